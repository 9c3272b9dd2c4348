//go:build cuda

package compute

/*
#cgo CFLAGS: -I/opt/cuda/include
#cgo LDFLAGS: -L/opt/cuda/lib64 -L${SRCDIR} -lcudart -lkernels -lstdc++
#include <stdlib.h>

extern int cuda_device_count();
extern const char* cuda_device_name_get();
extern void matvec_gpu(float* mat, float* vec, float* result, int rows, int cols);
*/
import "C"
import "unsafe"

type CUDABackend struct {
	available  bool
	deviceName string
}

func NewCUDABackend() *CUDABackend {
	count := int(C.cuda_device_count())
	name := ""
	if count > 0 {
		name = C.GoString(C.cuda_device_name_get())
	}
	return &CUDABackend{
		available:  count > 0,
		deviceName: name,
	}
}

func (c *CUDABackend) Name() string {
	if c.available {
		return "cuda (" + c.deviceName + ")"
	}
	return "cuda (not available)"
}

func (c *CUDABackend) Available() bool { return c.available }
func (c *CUDABackend) Cleanup()        {}

// MatVecMul dispatches the radiation-convolution contraction to the GPU
// kernel when a device is present, falling back to the CPU backend
// otherwise. Rows are assumed rectangular (each row the same width as
// vec); a ragged mat falls back to the CPU path, which tolerates it.
func (c *CUDABackend) MatVecMul(mat [][]float64, vec []float64) []float64 {
	if !c.available || !rectangular(mat, len(vec)) {
		cpu := NewCPUBackend()
		return cpu.MatVecMul(mat, vec)
	}

	rows := len(mat)
	cols := len(vec)

	flat := make([]float32, rows*cols)
	for i, row := range mat {
		for j, v := range row {
			flat[i*cols+j] = float32(v)
		}
	}
	vecF := make([]float32, cols)
	for j, v := range vec {
		vecF[j] = float32(v)
	}
	resF := make([]float32, rows)

	C.matvec_gpu(
		(*C.float)(unsafe.Pointer(&flat[0])),
		(*C.float)(unsafe.Pointer(&vecF[0])),
		(*C.float)(unsafe.Pointer(&resF[0])),
		C.int(rows),
		C.int(cols),
	)

	result := make([]float64, rows)
	for i, v := range resF {
		result[i] = float64(v)
	}
	return result
}

func rectangular(mat [][]float64, width int) bool {
	for _, row := range mat {
		if len(row) != width {
			return false
		}
	}
	return true
}
