package writefiles

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/goibm/geometry2D"
	"github.com/notargets/goibm/solvers/NavierStokes"
)

/*
Writer stores a run in one directory:
  - grid: little endian int64 Nx, Ny followed by the X and Y node coordinates
  - iterations, forces: one text line per step
  - q/NNNNNNN, lambda/NNNNNNN: solution snapshots in the gonum mat.VecDense binary format
*/
type Writer struct {
	Dir            string
	iterationsFile *os.File
	forcesFile     *os.File
	iterations     *bufio.Writer
	forces         *bufio.Writer
}

func NewWriter(dir string) (w *Writer, err error) {
	w = &Writer{Dir: dir}
	for _, sub := range []string{dir, filepath.Join(dir, "q"), filepath.Join(dir, "lambda")} {
		if err = os.MkdirAll(sub, 0755); err != nil {
			return
		}
	}
	if w.iterationsFile, err = os.Create(filepath.Join(dir, "iterations")); err != nil {
		return
	}
	if w.forcesFile, err = os.Create(filepath.Join(dir, "forces")); err != nil {
		_ = w.iterationsFile.Close()
		return
	}
	w.iterations = bufio.NewWriter(w.iterationsFile)
	w.forces = bufio.NewWriter(w.forcesFile)
	return
}

func (w *Writer) WriteGrid(dom *geometry2D.Domain) (err error) {
	var file *os.File
	if file, err = os.Create(filepath.Join(w.Dir, "grid")); err != nil {
		return
	}
	defer file.Close()
	for _, data := range []interface{}{int64(dom.Nx), int64(dom.Ny), dom.X, dom.Y} {
		if err = binary.Write(file, binary.LittleEndian, data); err != nil {
			return
		}
	}
	return
}

func (w *Writer) WriteIterations(st NavierStokes.StepState) (err error) {
	_, err = fmt.Fprintf(w.iterations, "%d\t%d\t%d\n", st.TimeStep, st.IterationCount1, st.IterationCount2)
	return
}

func (w *Writer) WriteForces(st NavierStokes.StepState) (err error) {
	_, err = fmt.Fprintf(w.forces, "%g\t%g\t%g\n", st.Time, st.ForceX, st.ForceY)
	return
}

func (w *Writer) WriteSnapshot(step int, q, lambda []float64) (err error) {
	if err = writeVector(filepath.Join(w.Dir, "q", fmt.Sprintf("%07d", step)), q); err != nil {
		return
	}
	return writeVector(filepath.Join(w.Dir, "lambda", fmt.Sprintf("%07d", step)), lambda)
}

func writeVector(fileName string, data []float64) (err error) {
	var file *os.File
	if file, err = os.Create(fileName); err != nil {
		return
	}
	defer file.Close()
	_, err = mat.NewVecDense(len(data), data).MarshalBinaryTo(file)
	return
}

// ReadVector loads a snapshot written by WriteSnapshot
func ReadVector(fileName string) (data []float64, err error) {
	var file *os.File
	if file, err = os.Open(fileName); err != nil {
		return
	}
	defer file.Close()
	var v mat.VecDense
	if _, err = v.UnmarshalBinaryFrom(file); err != nil {
		return
	}
	data = v.RawVector().Data
	return
}

func (w *Writer) Close() (err error) {
	for _, bw := range []*bufio.Writer{w.iterations, w.forces} {
		if ferr := bw.Flush(); ferr != nil && err == nil {
			err = ferr
		}
	}
	for _, f := range []*os.File{w.iterationsFile, w.forcesFile} {
		if ferr := f.Close(); ferr != nil && err == nil {
			err = ferr
		}
	}
	return
}
