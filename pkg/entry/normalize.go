package entry

import (
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

var dumpOptions = &pretty.Options{Width: 80, Indent: "  "}

// Normalize converts a raw backend record of any schema revision into an
// Entry. It never fails: malformed content degrades to a best-effort text.
//
// Text is taken from, in order: parsed array content joined by newlines,
// parsed string content, the legacy flat text field, a pretty-printed dump of
// the parsed content, and finally the unparseable content string itself.
func Normalize(raw []byte) Entry {
	rec := gjson.ParseBytes(raw)
	if !gjson.ValidBytes(raw) || !rec.IsObject() {
		if rec.Type == gjson.String {
			return Entry{Text: rec.String()}
		}
		return Entry{}
	}

	parsed, loose := parseContent(rec.Get("content"))

	e := Entry{
		ID:     firstPresent(rec, "id", "uuid"),
		Date:   firstPresent(rec, "created_at", "updated_at", "date"),
		Domain: firstPresent(rec, "agent", "domain"),
	}
	if parsed.IsObject() {
		if d := parsed.Get("domain.domain"); present(d) {
			e.Domain = d.String()
		}
	}

	body := parsed.Get("content")
	legacy := rec.Get("text")
	switch {
	case parsed.IsObject() && body.IsArray():
		lines := make([]string, 0, len(body.Array()))
		for _, l := range body.Array() {
			lines = append(lines, l.String())
		}
		e.Text = strings.Join(lines, "\n")
	case parsed.IsObject() && body.Type == gjson.String:
		e.Text = body.String()
	case legacy.Type == gjson.String && legacy.String() != "":
		e.Text = legacy.String()
	case parsed.IsObject() || parsed.IsArray():
		e.Text = strings.TrimSpace(string(pretty.PrettyOptions([]byte(parsed.Raw), dumpOptions)))
	default:
		e.Text = loose
	}
	return e
}

// NormalizeList normalizes every element of a JSON array. A body that is not
// an array yields an empty list.
func NormalizeList(raw []byte) []Entry {
	list := gjson.ParseBytes(raw)
	if !list.IsArray() {
		return []Entry{}
	}
	out := make([]Entry, 0, len(list.Array()))
	for _, r := range list.Array() {
		out = append(out, Normalize([]byte(r.Raw)))
	}
	return out
}

// parseContent returns the structured form of a content field and, when the
// content is a string that is not structured, that string.
func parseContent(content gjson.Result) (gjson.Result, string) {
	switch {
	case content.Type == gjson.String:
		s := content.String()
		if !gjson.Valid(s) {
			return gjson.Result{}, s
		}
		parsed := gjson.Parse(s)
		if parsed.IsObject() || parsed.IsArray() {
			return parsed, ""
		}
		return gjson.Result{}, s
	case content.IsObject(), content.IsArray():
		return content, ""
	}
	return gjson.Result{}, ""
}

func present(r gjson.Result) bool {
	return r.Exists() && r.Type != gjson.Null
}

func firstPresent(rec gjson.Result, keys ...string) string {
	for _, k := range keys {
		if v := rec.Get(k); present(v) {
			return v.String()
		}
	}
	return ""
}
