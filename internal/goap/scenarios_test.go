package goap

import (
	"context"
	"testing"
)

func actionNames(plan Plan) []string {
	names := make([]string, len(plan.Steps))
	for i, s := range plan.Steps {
		names[i] = s.ActionName
	}
	return names
}

func assertSequence(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestScenarioCookAndEat(t *testing.T) {
	p := NewPlanner([]string{"hungry", "has_food"})
	_ = p.SetStartState(State{"hungry": Bool(true), "has_food": Bool(false)})
	_ = p.SetGoalState(Mask{"hungry": Bool(false)})

	c := NewActionCatalog()
	c.AddCondition("cook", Mask{"hungry": Bool(true), "has_food": Bool(false)})
	c.AddEffect("cook", State{"has_food": Bool(true)})
	c.SetCost("cook", 1)
	c.AddCondition("eat", Mask{"hungry": Bool(true), "has_food": Bool(true)})
	c.AddEffect("eat", State{"hungry": Bool(false), "has_food": Bool(false)})
	c.SetCost("eat", 1)
	p.SetActionList(c)

	res, err := p.Calculate(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if res.Status != StatusFound {
		t.Fatalf("expected Found, got %s", res.Status)
	}
	assertSequence(t, actionNames(res.Plan), "cook", "eat")
	if res.Plan.Cost != 2 {
		t.Errorf("expected total cost 2, got %v", res.Plan.Cost)
	}
}

func TestScenarioCheapestOfCompetingPaths(t *testing.T) {
	p := NewPlanner([]string{"a", "b", "c", "z"})
	_ = p.SetStartState(State{"a": Bool(true), "b": Bool(false), "c": Bool(false), "z": Bool(false)})
	_ = p.SetGoalState(Mask{"z": Bool(true)})

	c := NewActionCatalog()
	c.AddCondition("step1", Mask{"a": Bool(true)})
	c.AddEffect("step1", State{"b": Bool(true)})
	c.SetCost("step1", 1)
	c.AddCondition("step2", Mask{"b": Bool(true)})
	c.AddEffect("step2", State{"z": Bool(true)})
	c.SetCost("step2", 1)
	c.AddCondition("heavy", Mask{"c": Bool(true)})
	c.AddEffect("heavy", State{"z": Bool(true)})
	c.SetCost("heavy", 100)
	p.SetActionList(c)

	res, err := p.Calculate(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	assertSequence(t, actionNames(res.Plan), "step1", "step2")
	if res.Plan.Cost != 2 {
		t.Errorf("expected total cost 2, got %v", res.Plan.Cost)
	}
}

func TestScenarioInfeasible(t *testing.T) {
	p := NewPlanner([]string{"a", "z"})
	_ = p.SetStartState(State{"a": Bool(true), "z": Bool(false)})
	_ = p.SetGoalState(Mask{"z": Bool(true)})

	c := NewActionCatalog()
	c.AddCondition("x", Mask{"a": Bool(true)})
	c.AddEffect("x", State{"a": Bool(true)})
	c.SetCost("x", 1)
	p.SetActionList(c)

	res, err := p.Calculate(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if res.Status != StatusNoPlan {
		t.Fatalf("expected NoPlan, got %s", res.Status)
	}
	if len(res.Plan.Steps) != 0 {
		t.Errorf("expected an empty plan, got %d steps", len(res.Plan.Steps))
	}
}

func TestScenarioBudgetExhaustion(t *testing.T) {
	// Several independent toggle keys, each untouched by the goal on
	// "z", give the actions a combinatorial number of unrelated states
	// to flip between so the frontier can't empty within 5 expansions.
	keys := []string{"z"}
	start := State{"z": Bool(false)}
	c := NewActionCatalog()
	for _, key := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"} {
		keys = append(keys, key)
		start[key] = Bool(false)

		onName := "flip_on_" + key
		c.AddCondition(onName, Mask{key: Bool(false)})
		c.AddEffect(onName, State{key: Bool(true)})
		c.SetCost(onName, 1)

		offName := "flip_off_" + key
		c.AddCondition(offName, Mask{key: Bool(true)})
		c.AddEffect(offName, State{key: Bool(false)})
		c.SetCost(offName, 1)
	}

	p := NewPlanner(keys)
	_ = p.SetStartState(start)
	_ = p.SetGoalState(Mask{"z": Bool(true)})
	p.SetActionList(c)

	res, err := p.Calculate(context.Background(), Options{MaxExpansions: 5})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if res.Status != StatusBudgetExhausted {
		t.Fatalf("expected BudgetExhausted, got %s", res.Status)
	}
}

func TestScenarioDeterministicTieBreak(t *testing.T) {
	p := NewPlanner([]string{"s", "z"})
	_ = p.SetStartState(State{"s": Bool(true), "z": Bool(false)})
	_ = p.SetGoalState(Mask{"z": Bool(true)})

	c := NewActionCatalog()
	c.AddCondition("a_action", Mask{"s": Bool(true)})
	c.AddEffect("a_action", State{"z": Bool(true)})
	c.SetCost("a_action", 1)
	c.AddCondition("b_action", Mask{"s": Bool(true)})
	c.AddEffect("b_action", State{"z": Bool(true)})
	c.SetCost("b_action", 1)
	p.SetActionList(c)

	res, err := p.Calculate(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	assertSequence(t, actionNames(res.Plan), "a_action")
	if res.Plan.Cost != 1 {
		t.Errorf("expected cost 1, got %v", res.Plan.Cost)
	}
}

// barricadeWindowsCatalog builds the catalog for the three-window
// barricade scenario: the player gathers tools once, then for each
// remaining window finds it, walks to it, and (after equipping tools
// once) barricades it. Modeled after the CombatAgent-style action
// tables in the game-AI GOAP reference this scenario is drawn from:
// small boolean flags plus an integer counter (windowsRemaining),
// rather than a reusable production action factory.
func barricadeWindowsCatalog() *ActionCatalog {
	c := NewActionCatalog()

	c.AddCondition("ensureResources", Mask{"hasHammer": Bool(false), "atBuilding": Bool(true)})
	c.AddEffect("ensureResources", State{"hasHammer": Bool(true), "hasPlank": Bool(true), "hasNails": Bool(true)})
	c.SetCost("ensureResources", 1)

	for _, i := range []int64{1, 2, 3} {
		name := windowActionName("findWindow", i)
		c.AddCondition(name, Mask{"hasTarget": Bool(false), "windowsRemaining": Int(i)})
		c.AddEffect(name, State{"hasTarget": Bool(true)})
		c.SetCost(name, 2)
	}

	c.AddCondition("walkToWindow", Mask{"hasTarget": Bool(true), "nearWindow": Bool(false)})
	c.AddEffect("walkToWindow", State{"nearWindow": Bool(true)})
	c.SetCost("walkToWindow", 2)

	c.AddCondition("equipTools", Mask{"hasHammer": Bool(true), "equipped": Bool(false)})
	c.AddEffect("equipTools", State{"equipped": Bool(true)})
	c.SetCost("equipTools", 1)

	for _, i := range []int64{1, 2, 3} {
		name := windowActionName("barricadeWindow", i)
		c.AddCondition(name, Mask{
			"nearWindow":       Bool(true),
			"equipped":         Bool(true),
			"windowsRemaining": Int(i),
		})
		c.AddEffect(name, State{
			"windowsRemaining": Int(i - 1),
			"hasTarget":        Bool(false),
			"nearWindow":       Bool(false),
		})
		c.SetCost(name, 5)
	}

	return c
}

func windowActionName(prefix string, i int64) string {
	digits := []byte{byte('0' + i)}
	return prefix + "_" + string(digits)
}

func TestScenarioBarricadeThreeWindows(t *testing.T) {
	p := NewPlanner([]string{
		"hasHammer", "hasPlank", "hasNails", "atBuilding",
		"windowsRemaining", "hasTarget", "nearWindow", "equipped",
	})
	_ = p.SetStartState(State{
		"hasHammer":        Bool(false),
		"hasPlank":         Bool(false),
		"hasNails":         Bool(false),
		"atBuilding":       Bool(true),
		"windowsRemaining": Int(3),
		"hasTarget":        Bool(false),
		"nearWindow":       Bool(false),
		"equipped":         Bool(false),
	})
	_ = p.SetGoalState(Mask{"windowsRemaining": Int(0)})
	p.SetActionList(barricadeWindowsCatalog())

	res, err := p.Calculate(context.Background(), Options{MaxExpansions: 100000})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if res.Status != StatusFound {
		t.Fatalf("expected Found, got %s", res.Status)
	}

	assertSequence(t, actionNames(res.Plan),
		"ensureResources",
		"findWindow_3", "walkToWindow", "equipTools", "barricadeWindow_3",
		"findWindow_2", "walkToWindow", "barricadeWindow_2",
		"findWindow_1", "walkToWindow", "barricadeWindow_1",
	)
	if res.Plan.Cost != 29 {
		t.Errorf("expected total cost 29, got %v", res.Plan.Cost)
	}
}

func TestScenarioPlanSatisfiesGoal(t *testing.T) {
	p := NewPlanner([]string{"hungry", "has_food"})
	_ = p.SetStartState(State{"hungry": Bool(true), "has_food": Bool(false)})
	_ = p.SetGoalState(Mask{"hungry": Bool(false)})

	c := NewActionCatalog()
	c.AddCondition("cook", Mask{"hungry": Bool(true), "has_food": Bool(false)})
	c.AddEffect("cook", State{"has_food": Bool(true)})
	c.SetCost("cook", 1)
	c.AddCondition("eat", Mask{"hungry": Bool(true), "has_food": Bool(true)})
	c.AddEffect("eat", State{"hungry": Bool(false), "has_food": Bool(false)})
	c.SetCost("eat", 1)
	p.SetActionList(c)

	res, err := p.Calculate(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if len(res.Plan.Steps) == 0 {
		t.Fatal("expected a non-empty plan")
	}
	final := res.Plan.Steps[len(res.Plan.Steps)-1].State
	if !final.Satisfies(Mask{"hungry": Bool(false)}) {
		t.Error("final state of the plan must satisfy the goal mask")
	}
}

func TestScenarioRPGFirstLevelFinite(t *testing.T) {
	start := State{"hungry": Bool(true), "has_food": Bool(false)}
	c := NewActionCatalog()
	c.AddCondition("cook", Mask{"hungry": Bool(true), "has_food": Bool(false)})
	c.AddEffect("cook", State{"has_food": Bool(true)})
	c.SetCost("cook", 1)
	c.AddCondition("eat", Mask{"hungry": Bool(true), "has_food": Bool(true)})
	c.AddEffect("eat", State{"hungry": Bool(false), "has_food": Bool(false)})
	c.SetCost("eat", 1)

	actions, err := c.Validate()
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	g := buildRPG(start, actions)

	if _, ok := g.firstAppearance("hungry", Bool(false)); !ok {
		t.Error("expected a finite first-appearance level for the goal-relevant key")
	}
}
