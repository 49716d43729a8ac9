package predictor

import "math"

// Plain batch gradient descent is enough at this data scale; training sets
// are a few thousand rows at most.
const (
	gdIterations   = 400
	gdLearningRate = 0.1
	ridgeLambda    = 1e-6
)

// fitLogistic fits weights+bias minimizing log loss over standardized rows.
func fitLogistic(rows [][]float64, labels []float64) (weights []float64, bias float64) {
	if len(rows) == 0 {
		return nil, 0
	}
	width := len(rows[0])
	weights = make([]float64, width)
	n := float64(len(rows))

	for iter := 0; iter < gdIterations; iter++ {
		grad := make([]float64, width)
		var gradBias float64
		for i, row := range rows {
			err := sigmoid(dot(weights, row)+bias) - labels[i]
			for j, x := range row {
				grad[j] += err * x
			}
			gradBias += err
		}
		for j := range weights {
			weights[j] -= gdLearningRate * grad[j] / n
		}
		bias -= gdLearningRate * gradBias / n
	}
	return weights, bias
}

// fitLinear solves the ridge-regularized normal equations for least-squares
// weights. The tiny lambda keeps the system solvable when one-hot columns
// are collinear.
func fitLinear(rows [][]float64, targets []float64) (weights []float64, bias float64) {
	if len(rows) == 0 {
		return nil, 0
	}
	// Fold the bias in as a trailing all-ones column.
	width := len(rows[0]) + 1
	a := make([][]float64, width)
	for i := range a {
		a[i] = make([]float64, width+1)
	}
	for r, row := range rows {
		aug := append(append([]float64{}, row...), 1)
		for i := 0; i < width; i++ {
			for j := 0; j < width; j++ {
				a[i][j] += aug[i] * aug[j]
			}
			a[i][width] += aug[i] * targets[r]
		}
	}
	for i := 0; i < width; i++ {
		a[i][i] += ridgeLambda
	}

	solved := gaussianSolve(a, width)
	if solved == nil {
		return nil, 0
	}
	return solved[:width-1], solved[width-1]
}

// gaussianSolve reduces the augmented matrix a (n x n+1) by partial-pivot
// elimination. Returns nil for a singular system.
func gaussianSolve(a [][]float64, n int) []float64 {
	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(a[pivot][col]) < 1e-12 {
			return nil
		}
		a[col], a[pivot] = a[pivot], a[col]
		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			f := a[r][col] / a[col][col]
			for c := col; c <= n; c++ {
				a[r][c] -= f * a[col][c]
			}
		}
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = a[i][n] / a[i][i]
	}
	return out
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}
