package core

// RankedResult 是引擎的最终输出：截断到请求规模的有序候选列表。
// 少于请求数量不是错误（InsufficientCandidates 只是一种合法结果），
// Returned() 总是携带实际数量。
type RankedResult struct {
	Items     []*Item
	Requested int

	// DiversityRelaxed 表示为凑满 N 放宽了“组键不重复”的约束
	//（候选池中不同组键数量少于 N 时的回退，绝不静默丢结果）。
	DiversityRelaxed bool
}

// Returned 返回实际条数。
func (r *RankedResult) Returned() int {
	return len(r.Items)
}
