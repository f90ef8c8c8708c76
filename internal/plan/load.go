package plan

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	mendErrors "github.com/craftvscruft/mend/internal/errors"
)

// rawPlan is the TOML document shape, including the one-level include
// mechanism and the legacy recipe.tag field normalized into recipe.tags.
type rawPlan struct {
	From    *rawOrigin            `toml:"from"`
	Include []string              `toml:"include"`
	Env     map[string]string     `toml:"env"`
	Recipes map[string]rawRecipe  `toml:"recipes"`
	Hooks   map[string][]rawHook  `toml:"hooks"`
	Steps   []string              `toml:"steps"`
}

type rawOrigin struct {
	SHA  string `toml:"sha"`
	Repo string `toml:"repo"`
}

type rawRecipe struct {
	Run            string   `toml:"run"`
	CommitTemplate *string  `toml:"commit_template"`
	Tag            *string  `toml:"tag"`
	Tags           []string `toml:"tags"`
}

type rawHook struct {
	Run        *string `toml:"run"`
	WhenTag    *string `toml:"when_tag"`
	WhenNotTag *string `toml:"when_not_tag"`
}

// Load reads the plan file at path, merging in any one-level-deep includes
// it declares, normalizing legacy recipe.tag fields into recipe.tags, and
// returns the resulting Plan.
func Load(path string) (*Plan, error) {
	dir := filepath.Dir(path)

	main, err := readRawPlan(path)
	if err != nil {
		return nil, err
	}

	merged := &rawPlan{
		Env:     map[string]string{},
		Recipes: map[string]rawRecipe{},
		Hooks:   map[string][]rawHook{},
	}

	for _, includeName := range main.Include {
		includePath := filepath.Join(dir, includeName)
		include, err := readRawPlan(includePath)
		if err != nil {
			return nil, err
		}
		if len(include.Steps) > 0 {
			return nil, fmt.Errorf("%w: include %q declares steps; includes are one level deep and must not declare steps", mendErrors.ErrPlanLoad, includeName)
		}
		extendRawPlan(merged, include)
	}
	extendRawPlan(merged, main)

	normalizeTags(merged)

	return toPlan(merged), nil
}

// readRawPlan reads and decodes a single TOML plan document.
func readRawPlan(path string) (*rawPlan, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- path comes from a trusted CLI flag or an include declared by the caller's own plan file
	if err != nil {
		return nil, fmt.Errorf("%w: could not read %q: %w", mendErrors.ErrPlanLoad, path, err)
	}

	var rp rawPlan
	if _, err := toml.Decode(string(data), &rp); err != nil {
		return nil, fmt.Errorf("%w: could not decode %q: %w", mendErrors.ErrPlanLoad, path, err)
	}
	return &rp, nil
}

// extendRawPlan merges incoming into merged. from is replaced wholesale;
// env/recipes/hooks are key-merged with incoming winning per key; steps are
// concatenated.
func extendRawPlan(merged, incoming *rawPlan) {
	if incoming.From != nil {
		merged.From = incoming.From
	}
	for k, v := range incoming.Env {
		merged.Env[k] = v
	}
	for k, v := range incoming.Recipes {
		merged.Recipes[k] = v
	}
	for k, v := range incoming.Hooks {
		merged.Hooks[k] = v
	}
	merged.Steps = append(merged.Steps, incoming.Steps...)
}

// normalizeTags appends a legacy single recipe.tag value onto recipe.tags,
// for backward compatibility with plans predating the tags list.
func normalizeTags(rp *rawPlan) {
	for name, r := range rp.Recipes {
		if r.Tag != nil {
			r.Tags = append(r.Tags, *r.Tag)
			r.Tag = nil
			rp.Recipes[name] = r
		}
	}
}

// toPlan converts the merged raw document into the core's in-memory Plan.
func toPlan(rp *rawPlan) *Plan {
	p := &Plan{
		Env:     NewOrderedEnv(),
		Recipes: map[string]Recipe{},
		Hooks:   map[HookKey][]Hook{},
		Steps:   rp.Steps,
	}

	if rp.From != nil {
		p.HasOrigin = true
		p.Origin = Origin{Revision: rp.From.SHA, RepoPath: rp.From.Repo}
	}

	for k, v := range rp.Env {
		p.Env.Set(k, v)
	}

	for name, r := range rp.Recipes {
		tags := map[string]struct{}{}
		for _, t := range r.Tags {
			tags[t] = struct{}{}
		}
		recipe := Recipe{Body: r.Run, Tags: tags}
		if r.CommitTemplate != nil {
			recipe.HasTemplate = true
			recipe.CommitTemplate = *r.CommitTemplate
		}
		p.Recipes[name] = recipe
	}

	for _, key := range []HookKey{HookBeforeStep, HookAfterStep} {
		for _, rh := range rp.Hooks[string(key)] {
			h := Hook{}
			if rh.Run != nil {
				h.HasBody = true
				h.Body = *rh.Run
			}
			if rh.WhenTag != nil {
				h.WhenTag = *rh.WhenTag
			} else if rh.WhenNotTag != nil {
				h.WhenNotTag = *rh.WhenNotTag
			}
			p.Hooks[key] = append(p.Hooks[key], h)
		}
	}

	return p
}
