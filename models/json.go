package models

import "encoding/json"

// The config store round-trips through load, tag mutation, and save. Fields
// this program does not know about must survive that trip, so every
// persisted struct keeps the raw message of its unknown keys.

type rawFields map[string]json.RawMessage

var appEntryKeys = []string{
	"name", "repo", "tag", "asset_pattern", "asset_match_type",
	"install_path", "use_prerelease", "install_path_match_type",
	"find_assets_hook", "find_assets_hook_args",
	"post_download_hook", "post_download_hook_args",
}

var trashConfigKeys = []string{"trash_path", "append_tag", "append_date"}

var configKeys = []string{"trash_config", "github_token", "apps"}

func unknownFields(data []byte, known []string) (rawFields, error) {
	var raw rawFields
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	for _, k := range known {
		delete(raw, k)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return raw, nil
}

func mergeFields(data []byte, extra rawFields) ([]byte, error) {
	if len(extra) == 0 {
		return data, nil
	}
	var raw rawFields
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	for k, v := range extra {
		if _, ok := raw[k]; !ok {
			raw[k] = v
		}
	}
	return json.Marshal(raw)
}

func (a *AppEntry) UnmarshalJSON(data []byte) error {
	type plain AppEntry
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := unknownFields(data, appEntryKeys)
	if err != nil {
		return err
	}
	*a = AppEntry(p)
	a.extra = extra
	return nil
}

func (a AppEntry) MarshalJSON() ([]byte, error) {
	type plain AppEntry
	data, err := json.Marshal(plain(a))
	if err != nil {
		return nil, err
	}
	return mergeFields(data, a.extra)
}

func (t *TrashConfig) UnmarshalJSON(data []byte) error {
	type plain TrashConfig
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := unknownFields(data, trashConfigKeys)
	if err != nil {
		return err
	}
	*t = TrashConfig(p)
	t.extra = extra
	return nil
}

func (t TrashConfig) MarshalJSON() ([]byte, error) {
	type plain TrashConfig
	data, err := json.Marshal(plain(t))
	if err != nil {
		return nil, err
	}
	return mergeFields(data, t.extra)
}

func (c *Config) UnmarshalJSON(data []byte) error {
	type plain Config
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := unknownFields(data, configKeys)
	if err != nil {
		return err
	}
	*c = Config(p)
	c.extra = extra
	return nil
}

func (c Config) MarshalJSON() ([]byte, error) {
	type plain Config
	data, err := json.Marshal(plain(c))
	if err != nil {
		return nil, err
	}
	return mergeFields(data, c.extra)
}
