package extractor

import (
	"reflect"
	"strconv"
	"strings"

	"mamlgen/internal/model"
)

// Struct tag keys recognized on command types
const (
	TagCmdlet    = "cmdlet"    // `cmdlet:"Get,Widget"` on the marker field
	TagOutput    = "output"    // `output:"Widget,[]string"` on the marker field
	TagParam     = "param"     // parameter bindings, one clause per set
	TagAlias     = "alias"     // `alias:"N,Id"`
	TagWildcards = "wildcards" // presence marks globbing support
)

// marker is the parsed command-declaration marker
type marker struct {
	Verb    string
	Noun    string
	Outputs []string
}

// parseMarker reads the cmdlet tag. ok is false when the tag is absent; a
// present tag without both verb and noun yields a non-empty reason.
func parseMarker(tag reflect.StructTag) (m marker, ok bool, reason string) {
	value, ok := tag.Lookup(TagCmdlet)
	if !ok {
		return marker{}, false, ""
	}

	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return marker{}, true, "cmdlet tag must be \"Verb,Noun\", got " + strconv.Quote(value)
	}
	m.Verb = strings.TrimSpace(parts[0])
	m.Noun = strings.TrimSpace(parts[1])
	switch {
	case m.Verb == "" && m.Noun == "":
		return marker{}, true, "verb and noun are empty"
	case m.Verb == "":
		return marker{}, true, "verb is empty"
	case m.Noun == "":
		return marker{}, true, "noun is empty"
	}

	if out, has := tag.Lookup(TagOutput); has {
		m.Outputs = splitList(out)
	}
	return m, true, ""
}

// parseBindings turns a param tag into per-set binding descriptors. Clauses
// are separated by ';' and each clause is a comma-separated list of
// Set=<name>, Mandatory, Position=<n>, ValueFromPipeline and
// ValueFromPipelineByPropertyName. Unknown items are returned as warnings.
func parseBindings(value string) ([]model.SetBinding, []string) {
	var (
		bindings []model.SetBinding
		warnings []string
		seen     = make(map[string]bool)
	)

	clauses := strings.Split(value, ";")
	for _, clause := range clauses {
		b := model.SetBinding{Set: model.AllParameterSets, Position: model.Named}
		for _, item := range strings.Split(clause, ",") {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			key, val, hasVal := strings.Cut(item, "=")
			key = strings.ToLower(strings.TrimSpace(key))
			val = strings.TrimSpace(val)

			switch key {
			case "set", "parametersetname":
				if hasVal && val != "" {
					b.Set = val
				}
			case "mandatory", "required":
				b.Required = !hasVal || parseBool(val)
			case "position":
				n, err := strconv.Atoi(val)
				if err != nil || n < 0 {
					warnings = append(warnings, "invalid position "+strconv.Quote(val))
					continue
				}
				b.Position = n
			case "valuefrompipeline":
				b.PipelineByValue = !hasVal || parseBool(val)
			case "valuefrompipelinebypropertyname":
				b.PipelineByPropertyName = !hasVal || parseBool(val)
			default:
				warnings = append(warnings, "unknown param item "+strconv.Quote(item))
			}
		}

		if seen[b.Set] {
			warnings = append(warnings, "duplicate binding for set "+strconv.Quote(b.Set))
			continue
		}
		seen[b.Set] = true
		bindings = append(bindings, b)
	}

	return bindings, warnings
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}
