// ChurnLab - Customer Churn Modeling Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/churnlab

package model

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sync"
	"time"
)

// Config contains configuration for the feed-forward classifier.
type Config struct {
	// HiddenUnits lists the width of each hidden layer.
	// Typical range: 1-3 layers of 8-64 units.
	HiddenUnits []int

	// Dropout is the fraction of hidden units dropped per training
	// sample. Zero disables dropout. Must be below 1.
	Dropout float64

	// LearningRate is the Adam step size.
	LearningRate float64

	// Beta1 is the Adam decay rate for the first moment estimate.
	Beta1 float64

	// Beta2 is the Adam decay rate for the second moment estimate.
	Beta2 float64

	// Epsilon stabilizes the Adam denominator.
	Epsilon float64

	// Epochs is the number of full passes over the training rows.
	Epochs int

	// BatchSize is the number of rows per gradient update.
	BatchSize int

	// ValidationSplit is the fraction of rows held out from the end
	// of the training matrix for per-epoch validation loss. Zero
	// disables the holdout.
	ValidationSplit float64

	// Seed drives weight initialization, shuffling, and dropout.
	// Zero seeds from the clock; any other value makes training
	// reproducible.
	Seed int64

	// Workers is the number of parallel workers for prediction.
	// If <= 0, defaults to the number of CPUs.
	Workers int
}

// DefaultConfig returns default classifier configuration.
func DefaultConfig() Config {
	return Config{
		HiddenUnits:     []int{16, 16},
		Dropout:         0.1,
		LearningRate:    0.001,
		Beta1:           0.9,
		Beta2:           0.999,
		Epsilon:         1e-7,
		Epochs:          35,
		BatchSize:       50,
		ValidationSplit: 0.3,
		Seed:            0,
		Workers:         0,
	}
}

// Classifier is a fully connected binary classifier with ReLU hidden
// layers and a sigmoid output unit.
type Classifier struct {
	config Config

	mu      sync.RWMutex
	trained bool

	// weights[l][j][i] connects input i to unit j of layer l.
	// The final layer is the single sigmoid output unit.
	weights [][][]float64
	biases  [][]float64

	// inputDim is the feature count fixed at training time.
	inputDim int

	trainLoss []float64
	valLoss   []float64
}

// New creates a new classifier with the given configuration.
func New(cfg Config) *Classifier {
	if len(cfg.HiddenUnits) == 0 {
		cfg.HiddenUnits = []int{16, 16}
	}
	units := make([]int, len(cfg.HiddenUnits))
	copy(units, cfg.HiddenUnits)
	for i, u := range units {
		if u <= 0 {
			units[i] = 16
		}
	}
	cfg.HiddenUnits = units

	if cfg.Dropout < 0 || cfg.Dropout >= 1 {
		cfg.Dropout = 0.1
	}
	if cfg.LearningRate <= 0 {
		cfg.LearningRate = 0.001
	}
	if cfg.Beta1 <= 0 || cfg.Beta1 >= 1 {
		cfg.Beta1 = 0.9
	}
	if cfg.Beta2 <= 0 || cfg.Beta2 >= 1 {
		cfg.Beta2 = 0.999
	}
	if cfg.Epsilon <= 0 {
		cfg.Epsilon = 1e-7
	}
	if cfg.Epochs <= 0 {
		cfg.Epochs = 35
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.ValidationSplit < 0 || cfg.ValidationSplit >= 1 {
		cfg.ValidationSplit = 0.3
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}

	return &Classifier{config: cfg}
}

// IsTrained returns whether the model has been trained.
func (c *Classifier) IsTrained() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.trained
}

// markTrained updates the trained state.
// Must be called while holding the training lock (acquireTrainLock).
func (c *Classifier) markTrained() {
	c.trained = true
}

// acquireTrainLock acquires the exclusive training lock.
func (c *Classifier) acquireTrainLock() {
	c.mu.Lock()
}

// releaseTrainLock releases the exclusive training lock.
func (c *Classifier) releaseTrainLock() {
	c.mu.Unlock()
}

// acquirePredictLock acquires the shared prediction lock.
func (c *Classifier) acquirePredictLock() {
	c.mu.RLock()
}

// releasePredictLock releases the shared prediction lock.
func (c *Classifier) releasePredictLock() {
	c.mu.RUnlock()
}

// Train fits the classifier on the feature matrix and 0/1 labels.
//
// Rows past the validation cut never contribute gradients; they are
// scored after every epoch for the validation loss history. The
// context is checked between epochs so a cancelled run stops at the
// next epoch boundary.
//
//nolint:gocyclo // ML training loops are inherently complex
func (c *Classifier) Train(ctx context.Context, features [][]float64, labels []float64) error {
	c.acquireTrainLock()
	defer c.releaseTrainLock()

	if ContextCancelled(ctx) {
		return ctx.Err()
	}

	n := len(features)
	if n == 0 {
		return errors.New("training requires at least one row")
	}
	if len(labels) != n {
		return fmt.Errorf("feature rows (%d) and labels (%d) differ", n, len(labels))
	}
	dim := len(features[0])
	if dim == 0 {
		return errors.New("training requires at least one feature")
	}
	for i, row := range features {
		if len(row) != dim {
			return fmt.Errorf("row %d has %d features, want %d", i, len(row), dim)
		}
	}

	trainEnd := int(float64(n) * (1 - c.config.ValidationSplit))
	if trainEnd < 1 {
		return fmt.Errorf("validation split %v leaves no training rows out of %d", c.config.ValidationSplit, n)
	}
	hasVal := trainEnd < n

	seed := c.config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // reproducible training, not cryptographic

	dims := make([]int, 0, len(c.config.HiddenUnits)+2)
	dims = append(dims, dim)
	dims = append(dims, c.config.HiddenUnits...)
	dims = append(dims, 1)
	c.initParameters(dims, rng)

	opt := newAdam(c.config.LearningRate, c.config.Beta1, c.config.Beta2, c.config.Epsilon, c.weights, c.biases)
	gradW, gradB := gradsLike(c.weights, c.biases)

	order := make([]int, trainEnd)
	for i := range order {
		order[i] = i
	}

	c.trainLoss = make([]float64, 0, c.config.Epochs)
	c.valLoss = nil
	if hasVal {
		c.valLoss = make([]float64, 0, c.config.Epochs)
	}

	for epoch := 0; epoch < c.config.Epochs; epoch++ {
		if ContextCancelled(ctx) {
			return ctx.Err()
		}

		rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})

		var epochLoss float64
		for start := 0; start < trainEnd; start += c.config.BatchSize {
			end := start + c.config.BatchSize
			if end > trainEnd {
				end = trainEnd
			}
			epochLoss += c.trainBatch(features, labels, order[start:end], gradW, gradB, opt, rng)
		}
		c.trainLoss = append(c.trainLoss, epochLoss/float64(trainEnd))

		if hasVal {
			c.valLoss = append(c.valLoss, c.meanLoss(features[trainEnd:], labels[trainEnd:]))
		}
	}

	c.inputDim = dim
	c.markTrained()
	return nil
}

// trainBatch accumulates gradients over one mini-batch, applies a
// single Adam step on the batch mean, and returns the summed loss.
func (c *Classifier) trainBatch(features [][]float64, labels []float64, batch []int, gradW [][][]float64, gradB [][]float64, opt *adam, rng *rand.Rand) float64 {
	zeroGrads(gradW, gradB)

	var lossSum float64
	for _, idx := range batch {
		p, acts, masks := c.forwardTrain(features[idx], rng)
		lossSum += crossEntropy(p, labels[idx])
		c.backward(features[idx], labels[idx], p, acts, masks, gradW, gradB)
	}

	scaleGrads(gradW, gradB, 1/float64(len(batch)))
	opt.step(c.weights, c.biases, gradW, gradB)

	return lossSum
}

// initParameters allocates the layer parameters for the given layer
// sizes. Weights draw from U(-0.05, 0.05); biases start at zero.
func (c *Classifier) initParameters(dims []int, rng *rand.Rand) {
	numLayers := len(dims) - 1
	c.weights = make([][][]float64, numLayers)
	c.biases = make([][]float64, numLayers)

	for l := 0; l < numLayers; l++ {
		c.weights[l] = make([][]float64, dims[l+1])
		c.biases[l] = make([]float64, dims[l+1])
		for j := range c.weights[l] {
			row := make([]float64, dims[l])
			for i := range row {
				row[i] = rng.Float64()*0.1 - 0.05
			}
			c.weights[l][j] = row
		}
	}
}

// forwardTrain runs a training-mode forward pass with inverted
// dropout. It returns the output probability, the post-dropout hidden
// activations, and the dropout multipliers, both indexed by hidden
// layer.
func (c *Classifier) forwardTrain(x []float64, rng *rand.Rand) (float64, [][]float64, [][]float64) {
	numHidden := len(c.weights) - 1
	acts := make([][]float64, numHidden)
	masks := make([][]float64, numHidden)
	keep := 1 - c.config.Dropout

	in := x
	for l := 0; l < numHidden; l++ {
		out := make([]float64, len(c.weights[l]))
		mask := make([]float64, len(out))
		for j := range out {
			z := c.biases[l][j]
			w := c.weights[l][j]
			for i, v := range in {
				z += w[i] * v
			}
			if z < 0 {
				z = 0
			}

			m := 1.0
			if c.config.Dropout > 0 {
				if rng.Float64() < c.config.Dropout {
					m = 0
				} else {
					m = 1 / keep
				}
			}
			out[j] = z * m
			mask[j] = m
		}
		acts[l] = out
		masks[l] = mask
		in = out
	}

	z := c.biases[numHidden][0]
	w := c.weights[numHidden][0]
	for i, v := range in {
		z += w[i] * v
	}

	return sigmoid(z), acts, masks
}

// backward accumulates gradients for one sample into gradW and gradB.
//
// The sigmoid output paired with cross-entropy gives the output delta
// p - y directly. Hidden deltas chain back through each dropout mask
// and the ReLU: units that were dropped or inactive receive zero.
func (c *Classifier) backward(x []float64, y, p float64, acts, masks [][]float64, gradW [][][]float64, gradB [][]float64) {
	numHidden := len(c.weights) - 1

	delta := []float64{p - y}
	for l := numHidden; l >= 0; l-- {
		in := x
		if l > 0 {
			in = acts[l-1]
		}

		for j, dz := range delta {
			gradB[l][j] += dz
			gw := gradW[l][j]
			for i, v := range in {
				gw[i] += dz * v
			}
		}

		if l == 0 {
			break
		}

		prev := make([]float64, len(acts[l-1]))
		for j, dz := range delta {
			w := c.weights[l][j]
			for i := range prev {
				prev[i] += dz * w[i]
			}
		}
		for i := range prev {
			if acts[l-1][i] > 0 {
				prev[i] *= masks[l-1][i]
			} else {
				prev[i] = 0
			}
		}
		delta = prev
	}
}

// forward runs an inference-mode forward pass with dropout disabled.
func (c *Classifier) forward(x []float64) float64 {
	numHidden := len(c.weights) - 1

	in := x
	for l := 0; l < numHidden; l++ {
		out := make([]float64, len(c.weights[l]))
		for j := range out {
			z := c.biases[l][j]
			w := c.weights[l][j]
			for i, v := range in {
				z += w[i] * v
			}
			if z > 0 {
				out[j] = z
			}
		}
		in = out
	}

	z := c.biases[numHidden][0]
	w := c.weights[numHidden][0]
	for i, v := range in {
		z += w[i] * v
	}

	return sigmoid(z)
}

// meanLoss returns the mean cross-entropy over the rows in
// inference mode.
func (c *Classifier) meanLoss(features [][]float64, labels []float64) float64 {
	var sum float64
	for i, row := range features {
		sum += crossEntropy(c.forward(row), labels[i])
	}
	return sum / float64(len(features))
}

// PredictProba returns the positive-class probability for each row.
// Rows are scored in parallel across the configured workers.
func (c *Classifier) PredictProba(features [][]float64) ([]float64, error) {
	c.acquirePredictLock()
	defer c.releasePredictLock()

	if !c.trained {
		return nil, errors.New("model is not trained")
	}
	n := len(features)
	if n == 0 {
		return nil, nil
	}
	for i, row := range features {
		if len(row) != c.inputDim {
			return nil, fmt.Errorf("row %d has %d features, want %d", i, len(row), c.inputDim)
		}
	}

	workers := c.config.Workers
	if workers > n {
		workers = n
	}

	probs := make([]float64, n)
	var wg sync.WaitGroup
	chunkSize := (n + workers - 1) / workers

	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			break
		}

		wg.Add(1)
		go func(rStart, rEnd int) {
			defer wg.Done()

			for i := rStart; i < rEnd; i++ {
				probs[i] = c.forward(features[i])
			}
		}(start, end)
	}

	wg.Wait()
	return probs, nil
}

// Classify returns 1 for rows whose positive-class probability
// exceeds the threshold and 0 otherwise.
func (c *Classifier) Classify(features [][]float64, threshold float64) ([]int, error) {
	probs, err := c.PredictProba(features)
	if err != nil {
		return nil, err
	}

	classes := make([]int, len(probs))
	for i, p := range probs {
		if p > threshold {
			classes[i] = 1
		}
	}
	return classes, nil
}

// PredictProbabilities returns a [positive, negative] probability
// pair per row. The pair always sums to one.
func (c *Classifier) PredictProbabilities(features [][]float64) ([][2]float64, error) {
	probs, err := c.PredictProba(features)
	if err != nil {
		return nil, err
	}

	pairs := make([][2]float64, len(probs))
	for i, p := range probs {
		pairs[i] = [2]float64{p, 1 - p}
	}
	return pairs, nil
}

// TrainLoss returns the per-epoch training loss history.
func (c *Classifier) TrainLoss() []float64 {
	c.acquirePredictLock()
	defer c.releasePredictLock()

	out := make([]float64, len(c.trainLoss))
	copy(out, c.trainLoss)
	return out
}

// ValLoss returns the per-epoch validation loss history. It is empty
// when training ran without a validation holdout.
func (c *Classifier) ValLoss() []float64 {
	c.acquirePredictLock()
	defer c.releasePredictLock()

	out := make([]float64, len(c.valLoss))
	copy(out, c.valLoss)
	return out
}

// crossEntropy returns the binary cross-entropy of predicted
// probability p against label y, with p clamped away from 0 and 1 to
// keep the logarithms finite.
func crossEntropy(p, y float64) float64 {
	const eps = 1e-7
	if p < eps {
		p = eps
	}
	if p > 1-eps {
		p = 1 - eps
	}
	return -(y*math.Log(p) + (1-y)*math.Log(1-p))
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

// ContextCancelled checks if the context has been canceled.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
