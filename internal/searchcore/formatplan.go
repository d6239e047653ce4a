package searchcore

import (
	"strconv"
	"strings"
)

// BuildFormatPlan resolves a FormatPlan from a query's attribute lists, per
// spec §4.5. highlight and crop entries may be "*" (meaning "every displayed
// field") or a bare name (highlight) / "name" or "name:N" (crop, where a
// positive N overrides cropLength; cropLength is used when N is absent or
// does not parse as a positive integer). toRetrieve fields that are not otherwise present in the plan
// are inserted unmodified ({Highlight:false, Crop:nil}) so that retrieved
// fields still surface in _formatted.
func BuildFormatPlan(highlight, crop []string, cropLength int, toRetrieve, displayed IDSet, fields FieldsIDsMap) FormatPlan {
	plan := make(FormatPlan)

	applyHighlights(plan, highlight, displayed, fields)
	applyCrops(plan, crop, cropLength, displayed, fields)

	if len(plan) > 0 {
		for id := range toRetrieve {
			if _, exists := plan[id]; !exists {
				plan[id] = FormatOptions{}
			}
		}
	}

	return plan
}

// applyHighlights implements spec §4.5 step 1.
func applyHighlights(plan FormatPlan, highlight []string, displayed IDSet, fields FieldsIDsMap) {
	for _, entry := range highlight {
		if entry == "*" {
			for id := range displayed {
				plan[id] = FormatOptions{Highlight: true}
			}

			return
		}

		id := fields.ID(entry)
		if !displayed.Has(id) {
			continue
		}

		plan[id] = FormatOptions{Highlight: true}
	}
}

// applyCrops implements spec §4.5 step 2. Each entry may be "name" or
// "name:N"; "*" applies to every displayed field.
func applyCrops(plan FormatPlan, crop []string, cropLength int, displayed IDSet, fields FieldsIDsMap) {
	for _, entry := range crop {
		name, length := parseCropEntry(entry, cropLength)

		if name == "*" {
			for id := range displayed {
				upsertCrop(plan, id, length)
			}

			continue
		}

		id := fields.ID(name)
		if !displayed.Has(id) {
			continue
		}

		upsertCrop(plan, id, length)
	}
}

// upsertCrop sets Crop:=length on the plan entry for id, creating one with
// Highlight:false if none exists yet.
func upsertCrop(plan FormatPlan, id FieldID, length int) {
	opts := plan[id]
	l := length
	opts.Crop = &l
	plan[id] = opts
}

// parseCropEntry splits a "name" or "name:N" attributesToCrop entry,
// falling back to fallback on a missing or unparsable N.
func parseCropEntry(entry string, fallback int) (name string, length int) {
	name, rest, found := strings.Cut(entry, ":")
	if !found {
		return name, fallback
	}

	n, err := strconv.Atoi(rest)
	if err != nil || n <= 0 {
		return name, fallback
	}

	return name, n
}

// IsFacetedBy reports whether a FormatPlan entry for dotted field path a
// governs a leaf at dotted path b, per the spec's symmetric prefix test: a
// is a prefix of b, or b is a prefix of a, on "." boundaries.
func IsFacetedBy(a, b string) bool {
	if a == b {
		return true
	}

	if strings.HasPrefix(b, a+".") {
		return true
	}

	return strings.HasPrefix(a, b+".")
}

// planEntry pairs a resolved dotted field path with the FormatOptions a plan
// assigned to it.
type planEntry struct {
	path string
	opts FormatOptions
}

// resolvePlanEntries translates a FormatPlan's FieldIDs to their field-path
// names, dropping any id the FieldsIDsMap cannot resolve.
func resolvePlanEntries(plan FormatPlan, fields FieldsIDsMap) []planEntry {
	out := make([]planEntry, 0, len(plan))

	for id, opts := range plan {
		name, ok := fields.Name(id)
		if !ok {
			continue
		}

		out = append(out, planEntry{path: name, opts: opts})
	}

	return out
}

// mergedOptionsForPath merges every plan entry whose field path facets path
// (§4.5 "Faceted nesting"), returning (zero, false) if none do.
func mergedOptionsForPath(path string, entries []planEntry) (FormatOptions, bool) {
	var merged FormatOptions

	matched := false

	for _, e := range entries {
		if !IsFacetedBy(e.path, path) {
			continue
		}

		if !matched {
			merged = e.opts
			matched = true

			continue
		}

		merged = merged.Merge(e.opts)
	}

	return merged, matched
}

// ApplyPlan applies plan to doc, producing the _formatted projection: only
// fields (and nested paths within them) governed by some plan entry are
// included, each transformed per its merged FormatOptions.
func ApplyPlan(doc *OrderedDoc, plan FormatPlan, fields FieldsIDsMap, matcher Matcher, formatter *Formatter) *OrderedDoc {
	out := NewOrderedDoc()

	if len(plan) == 0 {
		return out
	}

	entries := resolvePlanEntries(plan, fields)

	for _, key := range doc.Keys() {
		value, _ := doc.Get(key)

		formatted, governed := applyPlanValue(key, value, entries, matcher, formatter)
		if governed {
			out.Set(key, formatted)
		}
	}

	return out
}

// applyPlanValue recursively applies the plan to value at dotted path,
// returning the formatted value and whether path is governed by any plan
// entry at all. Object/array containers recurse so that a plan entry on a
// nested path (e.g. "a.b") governs only that leaf inside "a", while scalars
// are formatted directly against the merged options for their own path.
func applyPlanValue(path string, value any, entries []planEntry, matcher Matcher, formatter *Formatter) (any, bool) {
	return applyPlanValueOpts(path, value, entries, matcher, formatter, false)
}

// applyPlanValueOpts is applyPlanValue's worker. clearCrop is true once the
// recursion has descended into any array or object, per spec §4.2/§9: crop
// never applies inside a container, only Highlight propagates down to its
// descendants (mirrors Formatter.FormatValue's inner.Crop = nil).
func applyPlanValueOpts(path string, value any, entries []planEntry, matcher Matcher, formatter *Formatter, clearCrop bool) (any, bool) {
	opts, governed := mergedOptionsForPath(path, entries)
	if !governed {
		return nil, false
	}

	if clearCrop {
		opts.Crop = nil
	}

	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))

		for k, val := range v {
			child, childGoverned := applyPlanValueOpts(path+"."+k, val, entries, matcher, formatter, true)
			if childGoverned {
				out[k] = child
			}
		}

		return out, true
	case *OrderedDoc:
		out := NewOrderedDoc()

		for _, k := range v.Keys() {
			val, _ := v.Get(k)

			child, childGoverned := applyPlanValueOpts(path+"."+k, val, entries, matcher, formatter, true)
			if childGoverned {
				out.Set(k, child)
			}
		}

		return out, true
	case []any:
		out := make([]any, len(v))

		for i, elem := range v {
			child, _ := applyPlanValueOpts(path, elem, entries, matcher, formatter, true)
			out[i] = child
		}

		return out, true
	default:
		return formatter.FormatValue(value, matcher, opts), true
	}
}
