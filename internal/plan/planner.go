package plan

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// PlanSteps expands every step line in p into a StepRequest, in order.
// Planning is total and deterministic: the same Plan always produces a
// byte-identical StepRequest sequence.
func PlanSteps(p *Plan) []StepRequest {
	requests := make([]StepRequest, 0, len(p.Steps))
	for _, line := range p.Steps {
		requests = append(requests, planStep(p, line))
	}
	return requests
}

func planStep(p *Plan, line string) StepRequest {
	trimmed := strings.TrimSpace(line)
	token0 := firstToken(trimmed)

	name, recipe, hasRecipe := matchRecipe(p.Recipes, token0)

	scripts := expandScripts(p, line, name, recipe, hasRecipe)

	commitMsg := renderCommitMsg(trimmed, recipe, hasRecipe)

	return StepRequest{
		Run:       line,
		Scripts:   scripts,
		CommitMsg: commitMsg,
	}
}

// firstToken returns the first whitespace-delimited token of s.
func firstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// matchRecipe finds the recipe whose name equals token exactly. At most one
// recipe can match since recipe names are unique.
func matchRecipe(recipes map[string]Recipe, token string) (string, Recipe, bool) {
	if token == "" {
		return "", Recipe{}, false
	}
	r, ok := recipes[token]
	if !ok {
		return "", Recipe{}, false
	}
	return token, r, true
}

// expandScripts builds the before_step/main/after_step script sequence for
// one step line, per §4.1 of the step-expansion contract.
func expandScripts(p *Plan, line, name string, recipe Recipe, hasRecipe bool) []string {
	activeTags := map[string]struct{}{}
	var prelude strings.Builder
	if hasRecipe {
		prelude.WriteString(fmt.Sprintf("function %s() {\n%s\n}\n", name, recipe.Body))
		for tag := range recipe.Tags {
			activeTags[tag] = struct{}{}
		}
	}
	prelude.WriteString(line)
	prelude.WriteString("\n")
	mainScript := prelude.String()

	scripts := make([]string, 0, 3)
	scripts = append(scripts, matchingHookScripts(p, HookBeforeStep, activeTags)...)
	scripts = append(scripts, mainScript)
	scripts = append(scripts, matchingHookScripts(p, HookAfterStep, activeTags)...)

	return scripts
}

// matchingHookScripts returns the hook bodies for key that pass the
// tag predicate, in declared order.
func matchingHookScripts(p *Plan, key HookKey, activeTags map[string]struct{}) []string {
	hooks := p.Hooks[key]
	scripts := make([]string, 0, len(hooks))
	for _, h := range hooks {
		if !h.HasBody {
			continue
		}
		if h.WhenTag != "" {
			if _, ok := activeTags[h.WhenTag]; !ok {
				continue
			}
		} else if h.WhenNotTag != "" {
			if _, ok := activeTags[h.WhenNotTag]; ok {
				continue
			}
		}
		scripts = append(scripts, h.Body)
	}
	return scripts
}

// renderCommitMsg renders the commit message for a step whose trimmed line
// is instruction and whose matched recipe (if any) is recipe.
func renderCommitMsg(instruction string, recipe Recipe, hasRecipe bool) string {
	template := instruction
	if hasRecipe && recipe.HasTemplate {
		template = recipe.CommitTemplate
	}

	args := strings.Fields(instruction)
	return expandTemplate(template, args)
}

// expandTemplate expands $N/${N} (1-based positional args, N < len(args))
// and $NAME/${NAME} (process environment) references in template. Any
// reference that cannot be resolved is left unexpanded; no errors occur.
func expandTemplate(template string, args []string) string {
	var out strings.Builder
	i := 0
	for i < len(template) {
		c := template[i]
		if c != '$' || i+1 >= len(template) {
			out.WriteByte(c)
			i++
			continue
		}

		if template[i+1] == '{' {
			end := strings.IndexByte(template[i+2:], '}')
			if end < 0 {
				out.WriteByte(c)
				i++
				continue
			}
			name := template[i+2 : i+2+end]
			out.WriteString(resolveRef(name, template[i:i+2+end+1], args))
			i += 2 + end + 1
			continue
		}

		name, length := readBareIdentifier(template[i+1:])
		if length == 0 {
			out.WriteByte(c)
			i++
			continue
		}
		out.WriteString(resolveRef(name, template[i:i+1+length], args))
		i += 1 + length
	}
	return out.String()
}

// readBareIdentifier reads a $NAME-style identifier (alphanumeric/underscore)
// from the start of s, returning the identifier and how many bytes it spans.
func readBareIdentifier(s string) (string, int) {
	i := 0
	for i < len(s) && isIdentByte(s[i]) {
		i++
	}
	return s[:i], i
}

func isIdentByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// resolveRef resolves a single $N/$NAME reference against positional args
// (1-based, N < len(args)) or the process environment, leaving the
// reference unexpanded (as "$name" or "${name}") if neither resolves. ref is
// the reference's original text.
func resolveRef(name, ref string, args []string) string {
	if n, err := strconv.Atoi(name); err == nil {
		if n >= 1 && n < len(args) {
			return args[n]
		}
		return ref
	}
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return ref
}
