package media

// Coarse static memory weights per variant, in MB. These are estimates
// driving the eviction policy, not measured usage.
var costMB = map[Kind]int{
	KindVideo:    10,
	KindEngine3D: 50,
	KindAR:       30,
}

func CostMB(k Kind) int {
	return costMB[k]
}
