package rules

/*
ApplyConwayRules returns the next state of a cell given its current state and
the number of live neighbors it has.

Two neighbors keep the cell as it is, three make it alive, anything else kills it.
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	switch neighbors {
	case 2:
		return alive
	case 3:
		return true
	default:
		return false
	}
}
