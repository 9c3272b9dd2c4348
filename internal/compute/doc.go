// Package compute abstracts the dense matrix-vector contraction used by
// the radiation convolution, so a CUDA build can drop in without touching
// call sites.
//
// The package automatically selects the best available backend:
//
//   - CUDA: GPU-accelerated matrix-vector multiply
//   - CPU: goroutine-parallel fallback for systems without GPU
//
// # Usage
//
//	backend := compute.GetBackend()
//	result := backend.MatVecMul(mat, vec)
//
// Build with CUDA support by enabling the cuda build tag; cuda.go then
// links against libcudart and a libkernels library expected in this
// package's directory:
//
//	go build -tags cuda ./...
package compute
