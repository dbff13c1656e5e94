package integrations

// IntegrationItem is a provider resource reduced to the fields the rest of the
// platform understands, independent of the provider's own schema.
type IntegrationItem struct {
	ID               string `json:"id"`
	Type             string `json:"type"`
	Name             string `json:"name"`
	ParentID         string `json:"parent_id,omitempty"`
	CreationTime     string `json:"creation_time,omitempty"`
	LastModifiedTime string `json:"last_modified_time,omitempty"`
}
