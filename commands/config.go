package commands

import (
	"sort"
)

// ConfigGetCommand returns the value of one config key, or every key when
// key is empty.
func ConfigGetCommand(key string) *CommandResponse {
	d, err := requireDashboard()
	if err != nil {
		return NewErrorResponse(err)
	}
	cfg := d.Config()

	if key == "" {
		keys := cfg.Keys()
		sort.Strings(keys)
		all := make(map[string]string, len(keys))
		for _, k := range keys {
			if v, err := cfg.GetKey(k); err == nil {
				all[k] = v
			}
		}
		return NewSuccessResponse(all)
	}

	value, err := cfg.GetKey(key)
	if err != nil {
		return NewErrorResponse(err)
	}
	return NewSuccessResponse(map[string]string{key: value})
}

// ConfigSetCommand updates one config key, persists the file and applies
// the change to the running dashboard where it can.
func ConfigSetCommand(key, value string) *CommandResponse {
	d, err := requireDashboard()
	if err != nil {
		return NewErrorResponse(err)
	}
	cfg := d.Config()
	if err := cfg.SetKey(key, value); err != nil {
		return NewErrorResponse(err)
	}
	if err := cfg.Save(); err != nil {
		return NewErrorResponse(err)
	}
	return NewSuccessResponse(map[string]string{key: value})
}
