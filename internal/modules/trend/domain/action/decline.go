package action

// IsDeclining 最后三个点严格递减（a > b > c），不足三个点返回 false
func IsDeclining(points []float64) bool {
	n := len(points)
	if n < 3 {
		return false
	}
	a, b, c := points[n-3], points[n-2], points[n-1]
	return a > b && b > c
}
