package main

import (
	"fmt"

	"git-commander/config"
	"git-commander/internal/model"
)

// resourcesFromConfig lists users, then repositories, then organizations.
func resourcesFromConfig(cfg config.GitConfig) []model.Resource {
	resources := make([]model.Resource, 0, len(cfg.Users)+len(cfg.Repos)+len(cfg.Orgs))
	for _, u := range cfg.Users {
		resources = append(resources, model.Resource{Kind: model.ResourceUser, Name: u})
	}
	for _, r := range cfg.Repos {
		resources = append(resources, model.Resource{Kind: model.ResourceRepo, Name: fmt.Sprintf("%s/%s", r.User, r.Repo)})
	}
	for _, o := range cfg.Orgs {
		resources = append(resources, model.Resource{Kind: model.ResourceOrg, Name: o})
	}
	return resources
}
