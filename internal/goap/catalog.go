package goap

import "sort"

// ActionCatalog accumulates and validates named actions before they are
// handed to a Planner. Actions are built incrementally: a precondition
// must exist before an effect or cost can be attached to the same name.
type ActionCatalog struct {
	order   []string
	entries map[string]*entry

	// Strict restricts effect values to booleans. Off by default, which
	// permits the boolean|integer|string scalar domain.
	Strict bool
}

// NewActionCatalog creates an empty catalog.
func NewActionCatalog() *ActionCatalog {
	return &ActionCatalog{entries: make(map[string]*entry)}
}

// AddCondition merges mask into the named action's precondition,
// last-write-wins per key. Creates the action entry if this is its first
// mention.
func (c *ActionCatalog) AddCondition(name string, mask Mask) {
	e, ok := c.entries[name]
	if !ok {
		e = &entry{conditions: NewMask()}
		c.entries[name] = e
		c.order = append(c.order, name)
	}
	e.hasCondition = true
	for k, v := range mask {
		e.conditions[k] = v
	}
}

// AddEffect merges effect into the named action's effect, last-write-wins
// per key. Returns NoMatchingCondition if the action has no precondition
// yet, InvalidEffectValue if effect contains Wildcard, or
// InvalidEffectType if a value's type is outside the permitted scalar
// domain (strict mode permits only booleans).
func (c *ActionCatalog) AddEffect(name string, effect State) error {
	e, ok := c.entries[name]
	if !ok || !e.hasCondition {
		return errNoMatchingCondition(name)
	}
	for k, v := range effect {
		if v.IsWildcard() {
			return errInvalidEffectValue(name, k)
		}
		if c.Strict && v.Kind() != KindBool {
			return errInvalidEffectType(name, k, v.TypeName())
		}
	}
	if e.effects == nil {
		e.effects = NewState()
	}
	e.hasEffect = true
	for k, v := range effect {
		e.effects[k] = v
	}
	return nil
}

// SetCost overwrites the named action's cost. Returns NoMatchingCondition
// if the action has no precondition yet, or InvalidCost if cost is not a
// finite positive number.
func (c *ActionCatalog) SetCost(name string, cost float64) error {
	e, ok := c.entries[name]
	if !ok || !e.hasCondition {
		return errNoMatchingCondition(name)
	}
	if !validCost(cost) {
		return errInvalidCost(name, cost)
	}
	e.hasCost = true
	e.cost = cost
	return nil
}

func validCost(cost float64) bool {
	return cost > 0 && cost < maxFiniteCost
}

// maxFiniteCost bounds "finite" without importing math for a single
// comparison; any cost above this is treated as a caller error rather
// than silently accepted into arithmetic that could overflow float64.
const maxFiniteCost = 1e18

// Conditions returns the named action's accumulated precondition mask, or
// nil if the action is unknown.
func (c *ActionCatalog) Conditions(name string) Mask {
	e, ok := c.entries[name]
	if !ok {
		return nil
	}
	return e.conditions
}

// Effects returns the named action's accumulated effect, or nil if the
// action is unknown or has none yet.
func (c *ActionCatalog) Effects(name string) State {
	e, ok := c.entries[name]
	if !ok {
		return nil
	}
	return e.effects
}

// Cost returns the named action's cost and whether it has been set.
func (c *ActionCatalog) Cost(name string) (float64, bool) {
	e, ok := c.entries[name]
	if !ok {
		return 0, false
	}
	return e.cost, e.hasCost
}

// Names returns the action names in insertion order.
func (c *ActionCatalog) Names() []string {
	names := make([]string, len(c.order))
	copy(names, c.order)
	return names
}

// Validate checks that every action entry has both an effect and a cost,
// and that every cost is a finite positive number, then freezes the
// catalog into a sorted-by-name slice of immutable Action values. Callers
// must not observe mutation of their own tables: Validate only reads from
// the entries accumulated via AddCondition/AddEffect/SetCost, and the
// resulting Action values are independent copies.
func (c *ActionCatalog) Validate() ([]Action, error) {
	names := make([]string, len(c.order))
	copy(names, c.order)
	sort.Strings(names)

	actions := make([]Action, 0, len(names))
	for _, name := range names {
		e := c.entries[name]
		if !e.hasEffect {
			return nil, errMissingEffect(name)
		}
		if !e.hasCost {
			return nil, errMissingCost(name)
		}
		if !validCost(e.cost) {
			return nil, errInvalidCost(name, e.cost)
		}
		actions = append(actions, Action{
			Name:          name,
			Preconditions: e.conditions.Clone(),
			Effects:       e.effects.Clone(),
			Cost:          e.cost,
		})
	}
	return actions, nil
}

// minCost returns the smallest cost among validated actions, or 0 if
// actions is empty.
func minCost(actions []Action) float64 {
	if len(actions) == 0 {
		return 0
	}
	min := actions[0].Cost
	for _, a := range actions[1:] {
		if a.Cost < min {
			min = a.Cost
		}
	}
	return min
}
