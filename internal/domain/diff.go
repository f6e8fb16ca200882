package domain

import (
	"bytes"
	"encoding/json"
	"sort"
)

// ChangedTopLevelKeys compares two JSON object payloads key by key and
// returns the sorted names of keys whose values differ, including keys
// present on only one side. Payloads that do not parse as objects compare
// as a single opaque "data" blob. Used to build compact audit diffs.
func ChangedTopLevelKeys(oldRaw, newRaw json.RawMessage) []string {
	var oldObj, newObj map[string]json.RawMessage
	if json.Unmarshal(oldRaw, &oldObj) != nil || json.Unmarshal(newRaw, &newObj) != nil {
		if !bytes.Equal(oldRaw, newRaw) {
			return []string{"data"}
		}
		return nil
	}

	var keys []string
	for k, oldVal := range oldObj {
		newVal, ok := newObj[k]
		if !ok || !jsonEqual(oldVal, newVal) {
			keys = append(keys, k)
		}
	}
	for k := range newObj {
		if _, ok := oldObj[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// jsonEqual compares two raw values structurally, ignoring formatting.
func jsonEqual(a, b json.RawMessage) bool {
	var av, bv any
	if json.Unmarshal(a, &av) != nil || json.Unmarshal(b, &bv) != nil {
		return bytes.Equal(a, b)
	}
	ar, errA := json.Marshal(av)
	br, errB := json.Marshal(bv)
	if errA != nil || errB != nil {
		return bytes.Equal(a, b)
	}
	return bytes.Equal(ar, br)
}
