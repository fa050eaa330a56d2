package client

import "encoding/json"

// PublishSettings are the per-document options a publisher chooses. They are
// carried between publishing sessions as an opaque JSON reference string.
type PublishSettings struct {
	Slug          string `json:"slug,omitempty"`
	AllowDownload bool   `json:"allowDownload"`
	AllowPrint    bool   `json:"allowPrint"`
}

// Ref serializes the settings into a reference string for storage.
func (s PublishSettings) Ref() string {
	b, err := json.Marshal(s)
	if err != nil {
		return ""
	}
	return string(b)
}

// ParsePublishSettings restores settings from a reference string. An empty
// or malformed reference yields nil, meaning defaults apply.
func ParsePublishSettings(ref string) *PublishSettings {
	if ref == "" {
		return nil
	}
	var s PublishSettings
	if err := json.Unmarshal([]byte(ref), &s); err != nil {
		return nil
	}
	return &s
}
