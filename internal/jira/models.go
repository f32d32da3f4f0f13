package jira

// ProjectLead identifies who leads a project.
type ProjectLead struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// IssueType describes one issue type available in a project.
type IssueType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IconURL     string `json:"iconUrl"`
}

// Project is the dashboard's stable project shape, reshaped from the raw
// Jira payload. Optional upstream fields map to documented defaults.
type Project struct {
	ID             string      `json:"id"`
	Key            string      `json:"key"`
	Name           string      `json:"name"`
	Description    string      `json:"description"`
	ProjectTypeKey string      `json:"projectTypeKey"`
	Lead           ProjectLead `json:"lead"`
	AvatarURL      string      `json:"avatarUrl"`
	URL            string      `json:"url"`
	IssueTypes     []IssueType `json:"issueTypes"`
	LastUpdated    string      `json:"lastUpdated,omitempty"`
	Style          string      `json:"style,omitempty"`
	Simplified     bool        `json:"simplified"`
}

// rawProject mirrors the fields we consume from GET /rest/api/3/project.
type rawProject struct {
	ID          string `json:"id"`
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Self        string `json:"self"`
	Simplified  bool   `json:"simplified"`
	Style       string `json:"style"`

	ProjectTypeKey string `json:"projectTypeKey"`

	Lead struct {
		DisplayName  string `json:"displayName"`
		EmailAddress string `json:"emailAddress"`
	} `json:"lead"`

	AvatarURLs map[string]string `json:"avatarUrls"`

	IssueTypes []struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		IconURL     string `json:"iconUrl"`
	} `json:"issueTypes"`

	Insight struct {
		LastIssueUpdateTime string `json:"lastIssueUpdateTime"`
	} `json:"insight"`
}
