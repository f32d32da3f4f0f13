package jira

import "testing"

func TestFormatProject_Defaults(t *testing.T) {
	raw := &rawProject{
		ID:   "10003",
		Key:  "BARE",
		Name: "Bare Project",
	}

	p := formatProject(raw)

	if p.Description != "" {
		t.Errorf("Expected empty description, got %q", p.Description)
	}
	if p.ProjectTypeKey != "unknown" {
		t.Errorf("Expected projectTypeKey unknown, got %q", p.ProjectTypeKey)
	}
	if p.Lead.Name != "Unknown" {
		t.Errorf("Expected lead name Unknown, got %q", p.Lead.Name)
	}
	if p.AvatarURL != "" {
		t.Errorf("Expected empty avatar, got %q", p.AvatarURL)
	}
	if p.Simplified {
		t.Error("Expected simplified to default to false")
	}
	if p.IssueTypes == nil || len(p.IssueTypes) != 0 {
		t.Errorf("Expected empty (non-nil) issue types, got %+v", p.IssueTypes)
	}
}

func TestFormatProject_AvatarFallback(t *testing.T) {
	raw := &rawProject{
		ID:         "10004",
		Key:        "AVA",
		Name:       "Avatar Project",
		AvatarURLs: map[string]string{"32x32": "https://example.com/32.png"},
	}

	p := formatProject(raw)
	if p.AvatarURL != "https://example.com/32.png" {
		t.Errorf("Expected 32x32 fallback, got %q", p.AvatarURL)
	}

	raw.AvatarURLs["48x48"] = "https://example.com/48.png"
	p = formatProject(raw)
	if p.AvatarURL != "https://example.com/48.png" {
		t.Errorf("Expected 48x48 to take priority, got %q", p.AvatarURL)
	}
}

func TestApplyProjectDetails(t *testing.T) {
	raw := &rawProject{
		ID:    "10005",
		Key:   "DET",
		Style: "next-gen",
	}
	raw.IssueTypes = []struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		IconURL     string `json:"iconUrl"`
	}{
		{ID: "1", Name: "Task", Description: "A task", IconURL: "https://example.com/task.png"},
		{ID: "2", Name: "Story", Description: "A story", IconURL: "https://example.com/story.png"},
	}
	raw.Insight.LastIssueUpdateTime = "2026-08-01T00:00:00.000+0000"

	p := Project{ID: "10005", Key: "DET", IssueTypes: []IssueType{}}
	applyProjectDetails(&p, raw)

	if len(p.IssueTypes) != 2 {
		t.Fatalf("Expected 2 issue types, got %d", len(p.IssueTypes))
	}
	if p.IssueTypes[1].Name != "Story" {
		t.Errorf("Expected second issue type Story, got %s", p.IssueTypes[1].Name)
	}
	if p.Style != "next-gen" {
		t.Errorf("Expected style next-gen, got %s", p.Style)
	}
	if p.LastUpdated != "2026-08-01T00:00:00.000+0000" {
		t.Errorf("Expected lastUpdated to be applied, got %s", p.LastUpdated)
	}
}
