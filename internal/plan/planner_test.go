package plan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftvscruft/mend/internal/plan"
)

func emptyPlan(steps []string) *plan.Plan {
	return &plan.Plan{
		Env:     plan.NewOrderedEnv(),
		Recipes: map[string]plan.Recipe{},
		Hooks:   map[plan.HookKey][]plan.Hook{},
		Steps:   steps,
	}
}

func TestPlanSteps_EmptyPlanYieldsNoRequests(t *testing.T) {
	requests := plan.PlanSteps(emptyPlan(nil))
	assert.Empty(t, requests)
}

func TestPlanSteps_SingleStepNoRecipeNoHooks(t *testing.T) {
	p := emptyPlan([]string{"echo hi"})
	requests := plan.PlanSteps(p)

	require.Len(t, requests, 1)
	assert.Equal(t, []string{"echo hi\n"}, requests[0].Scripts)
	assert.Equal(t, "echo hi", requests[0].CommitMsg)
	assert.Equal(t, "echo hi", requests[0].Run)
}

func TestPlanSteps_RecipeExpansionOnlyInjectsMatchedRecipe(t *testing.T) {
	p := emptyPlan([]string{"cmd arg1 arg2"})
	p.Recipes["cmd"] = plan.Recipe{Body: "resolved $1 $2", Tags: map[string]struct{}{}}
	p.Recipes["not_used"] = plan.Recipe{Body: "should not appear!", Tags: map[string]struct{}{}}

	requests := plan.PlanSteps(p)

	require.Len(t, requests, 1)
	require.Len(t, requests[0].Scripts, 1)
	assert.Equal(t, "function cmd() {\nresolved $1 $2\n}\ncmd arg1 arg2\n", requests[0].Scripts[0])
	assert.NotContains(t, requests[0].Scripts[0], "should not appear!")
}

func TestPlanSteps_HookSelectionByTag(t *testing.T) {
	p := emptyPlan([]string{"cmd x"})
	p.Recipes["cmd"] = plan.Recipe{Body: "echo cmd", Tags: map[string]struct{}{"some_tag": {}}}
	p.Hooks[plan.HookBeforeStep] = []plan.Hook{
		{Body: "echo A", HasBody: true, WhenTag: "some_tag"},
		{Body: "echo B", HasBody: true, WhenNotTag: "some_tag"},
	}

	requests := plan.PlanSteps(p)

	require.Len(t, requests, 1)
	require.NotEmpty(t, requests[0].Scripts)
	assert.Equal(t, "echo A", requests[0].Scripts[0])
	for _, s := range requests[0].Scripts {
		assert.NotContains(t, s, "echo B")
	}
}

func TestPlanSteps_CommitTemplateRendering(t *testing.T) {
	p := emptyPlan([]string{"rename old new"})
	p.Recipes["rename"] = plan.Recipe{
		Body:           "mv $1 $2",
		CommitTemplate: "r - Rename $1 to $2",
		HasTemplate:    true,
		Tags:           map[string]struct{}{},
	}

	requests := plan.PlanSteps(p)

	require.Len(t, requests, 1)
	assert.Equal(t, "r - Rename old to new", requests[0].CommitMsg)
}

func TestPlanSteps_CommitTemplateWithBraces(t *testing.T) {
	p := emptyPlan([]string{"rename old new"})
	p.Recipes["rename"] = plan.Recipe{
		Body:           "mv $1 $2",
		CommitTemplate: "r - Rename ${1} to ${2}",
		HasTemplate:    true,
		Tags:           map[string]struct{}{},
	}

	requests := plan.PlanSteps(p)

	require.Len(t, requests, 1)
	assert.Equal(t, "r - Rename old to new", requests[0].CommitMsg)
}

func TestPlanSteps_CommitTemplateUnresolvedRefLeftAsIs(t *testing.T) {
	p := emptyPlan([]string{"rename old"})
	p.Recipes["rename"] = plan.Recipe{
		Body:           "mv $1",
		CommitTemplate: "r - $1 to $2",
		HasTemplate:    true,
		Tags:           map[string]struct{}{},
	}

	requests := plan.PlanSteps(p)

	require.Len(t, requests, 1)
	assert.Contains(t, requests[0].CommitMsg, "$2")
}

func TestPlanSteps_CommitTemplateResolvesEnvVar(t *testing.T) {
	t.Setenv("MEND_PLANNER_TEST_VAR", "env-value")
	p := emptyPlan([]string{"cmd"})
	p.Recipes["cmd"] = plan.Recipe{
		Body:           "echo cmd",
		CommitTemplate: "use $MEND_PLANNER_TEST_VAR",
		HasTemplate:    true,
		Tags:           map[string]struct{}{},
	}

	requests := plan.PlanSteps(p)

	require.Len(t, requests, 1)
	assert.Equal(t, "use env-value", requests[0].CommitMsg)
}

func TestPlanSteps_RecipeMatchesByExactTokenEquality(t *testing.T) {
	p := emptyPlan([]string{"farm install"})
	p.Recipes["rm"] = plan.Recipe{Body: "rm -rf /", Tags: map[string]struct{}{}}

	requests := plan.PlanSteps(p)

	require.Len(t, requests, 1)
	assert.NotContains(t, requests[0].Scripts[0], "rm -rf /")
}

func TestPlanSteps_HookWithNoBodyIsSkipped(t *testing.T) {
	p := emptyPlan([]string{"cmd"})
	p.Hooks[plan.HookBeforeStep] = []plan.Hook{{HasBody: false}}

	requests := plan.PlanSteps(p)

	require.Len(t, requests, 1)
	assert.Len(t, requests[0].Scripts, 1)
}

func TestPlanSteps_IsDeterministic(t *testing.T) {
	p := emptyPlan([]string{"cmd arg1 arg2"})
	p.Recipes["cmd"] = plan.Recipe{Body: "resolved $1 $2", Tags: map[string]struct{}{}}

	first := plan.PlanSteps(p)
	second := plan.PlanSteps(p)

	assert.Equal(t, first, second)
}
