package search

// ToggleState is the state of a filter relative to a query: Active when its
// value is present, Inverted when it is present as an exclusion.
type ToggleState struct {
	Active   bool
	Inverted bool
}

// NextQuery returns the query that results from clicking target while it is in
// state, using the strategy of the target's category.
func (p *Parser) NextQuery(current string, target FilterOption, state ToggleState) string {
	return p.NextQueryWithStrategy(current, target, state, target.EffectiveStrategy())
}

// NextQueryWithStrategy is NextQuery with an explicit strategy.
// StrategyDefault uses the target's own strategy. A target whose query holds
// no field filter leaves current unchanged.
func (p *Parser) NextQueryWithStrategy(current string, target FilterOption, state ToggleState, strategy FilterStrategy) string {
	pair, ok := firstPair(target.Query)
	if !ok {
		return current
	}
	if strategy == StrategyDefault {
		strategy = target.EffectiveStrategy()
	}
	tokens := p.parse(current, "")
	applyToggle(&tokens, pair, state, strategy)
	return Rebuild(tokens)
}

// StateOf reports the state of filterQuery within current.
func (p *Parser) StateOf(current, filterQuery string) ToggleState {
	return stateOf(p.parse(current, ""), filterPairs(filterQuery))
}

// Decorate returns copies of filters with Active, Inverted and NextQuery
// computed against current. The query is parsed once.
func (p *Parser) Decorate(current string, filters []FilterOption) []FilterOption {
	tokens := p.parse(current, "")
	out := make([]FilterOption, 0, len(filters))
	for _, f := range filters {
		state := stateOf(tokens, filterPairs(f.Query))
		f.Active = state.Active
		f.Inverted = state.Inverted
		f.NextQuery = current
		if pair, ok := firstPair(f.Query); ok {
			next := tokens.clone()
			applyToggle(&next, pair, state, f.EffectiveStrategy())
			f.NextQuery = Rebuild(next)
		}
		out = append(out, f)
	}
	return out
}

type fieldPair struct {
	field string
	value string
}

// filterPairs extracts every (field, value) named by a filter query. Values
// keep their case; comparisons are case-insensitive.
func filterPairs(query string) []fieldPair {
	var pairs []fieldPair
	for _, m := range fieldPattern.FindAllStringSubmatch(query, -1) {
		for _, v := range parseFieldValue(m[3]) {
			pairs = append(pairs, fieldPair{field: m[2], value: normalizeValue(v)})
		}
	}
	return pairs
}

func firstPair(query string) (fieldPair, bool) {
	pairs := filterPairs(query)
	if len(pairs) == 0 {
		return fieldPair{}, false
	}
	return pairs[0], true
}

// stateOf finds the first pair present in tokens. An excluded match wins over
// an included one.
func stateOf(tokens SearchTokens, pairs []fieldPair) ToggleState {
	for _, pair := range pairs {
		if containsValue(tokens.Excluded, pair) {
			return ToggleState{Active: true, Inverted: true}
		}
		if containsValue(tokens.Included, pair) {
			return ToggleState{Active: true}
		}
	}
	return ToggleState{}
}

func containsValue(terms Terms, pair fieldPair) bool {
	key, _ := terms.lookup(pair.field)
	for _, v := range terms.values[key] {
		if sameValue(v, pair.value) {
			return true
		}
	}
	return false
}

func applyToggle(tokens *SearchTokens, pair fieldPair, state ToggleState, strategy FilterStrategy) {
	switch strategy {
	case StrategyExclusive:
		if state.Active {
			removePair(tokens, pair)
			return
		}
		tokens.Included.deleteField(pair.field)
		tokens.Excluded.deleteField(pair.field)
		addPair(&tokens.Included, pair)
	case StrategyInvert:
		invert(tokens, pair, state)
	case StrategyReplace:
		tokens.Included.clear()
		tokens.Excluded.clear()
		if state.Inverted {
			addPair(&tokens.Excluded, pair)
		} else {
			addPair(&tokens.Included, pair)
		}
		invert(tokens, pair, state)
	default:
		if state.Active {
			removePair(tokens, pair)
			return
		}
		addPair(&tokens.Included, pair)
	}
}

// invert walks the three-state cycle: absent, included, excluded, absent.
func invert(tokens *SearchTokens, pair fieldPair, state ToggleState) {
	switch {
	case !state.Active:
		addPair(&tokens.Included, pair)
	case !state.Inverted:
		removePair(tokens, pair)
		addPair(&tokens.Excluded, pair)
	default:
		removePair(tokens, pair)
	}
}

func removePair(tokens *SearchTokens, pair fieldPair) {
	match := func(v string) bool { return sameValue(v, pair.value) }
	tokens.Included.removeWhere(pair.field, match)
	tokens.Excluded.removeWhere(pair.field, match)
}

func addPair(terms *Terms, pair fieldPair) {
	if containsValue(*terms, pair) {
		return
	}
	terms.add(pair.field, pair.value)
}
