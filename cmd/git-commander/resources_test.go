package main

import (
	"testing"

	"git-commander/config"
	"git-commander/internal/model"
)

func TestResourcesFromConfig(t *testing.T) {
	got := resourcesFromConfig(config.GitConfig{
		Users: []string{"alice"},
		Repos: []config.RepoConfig{{User: "acme", Repo: "api"}},
		Orgs:  []string{"acme"},
	})

	want := []model.Resource{
		{Kind: model.ResourceUser, Name: "alice"},
		{Kind: model.ResourceRepo, Name: "acme/api"},
		{Kind: model.ResourceOrg, Name: "acme"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d resources, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("resource %d = %v, want %v", i, got[i], want[i])
		}
	}
}
