package jira

// formatProject reshapes one raw Jira project into the dashboard schema.
// Missing optional fields take documented defaults: empty description and
// avatar, "unknown" project type, "Unknown" lead name, simplified false.
// The transform is one-directional; already-formatted records are not input.
func formatProject(raw *rawProject) Project {
	leadName := raw.Lead.DisplayName
	if leadName == "" {
		leadName = "Unknown"
	}

	// Prefer the 48x48 avatar, fall back to 32x32, then empty.
	avatar := raw.AvatarURLs["48x48"]
	if avatar == "" {
		avatar = raw.AvatarURLs["32x32"]
	}

	projectType := raw.ProjectTypeKey
	if projectType == "" {
		projectType = "unknown"
	}

	return Project{
		ID:             raw.ID,
		Key:            raw.Key,
		Name:           raw.Name,
		Description:    raw.Description,
		ProjectTypeKey: projectType,
		Lead: ProjectLead{
			Name:  leadName,
			Email: raw.Lead.EmailAddress,
		},
		AvatarURL:  avatar,
		URL:        raw.Self,
		IssueTypes: []IssueType{},
		Simplified: raw.Simplified,
	}
}

// applyProjectDetails merges the per-project detail payload (issue types,
// style, last update time) into an already formatted project.
func applyProjectDetails(p *Project, raw *rawProject) {
	issueTypes := make([]IssueType, 0, len(raw.IssueTypes))
	for _, it := range raw.IssueTypes {
		issueTypes = append(issueTypes, IssueType{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			IconURL:     it.IconURL,
		})
	}
	p.IssueTypes = issueTypes
	p.Style = raw.Style
	p.LastUpdated = raw.Insight.LastIssueUpdateTime
}
