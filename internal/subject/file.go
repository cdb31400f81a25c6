package subject

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/randomizedcoder/task-benchmarks/internal/task"
)

// FileName is the relative path created by the write-loop subjects.
const FileName = "tmp"

// ErrInvalidParams is returned when iteration count or buffer size is
// not positive.
var ErrInvalidParams = errors.New("subject: iterations and buffer size must be positive")

// FS is the filesystem the write-loop subjects create and remove
// their file through.
type FS interface {
	Create(name string) (io.WriteCloser, error)
	Remove(name string) error
}

// OSFS is an FS rooted at Dir on the real filesystem.
// The zero value uses the working directory.
type OSFS struct {
	Dir string
}

// Create creates or truncates name under Dir.
func (f OSFS) Create(name string) (io.WriteCloser, error) {
	return os.Create(filepath.Join(f.Dir, name))
}

// Remove deletes name under Dir.
func (f OSFS) Remove(name string) error {
	return os.Remove(filepath.Join(f.Dir, name))
}

// WriteFileLoop creates FileName, awaits iterations writes of bufferSize
// zero bytes, each issued as a *task.Task, then removes the file.
func WriteFileLoop(fsys FS, iterations, bufferSize int) *task.Task[struct{}] {
	return task.Run(func() (struct{}, error) {
		return struct{}{}, writeLoop(fsys, iterations, bufferSize, writeTask)
	})
}

// WriteFileLoopValue is WriteFileLoop with every write, and the result,
// represented as a task.ValueTask.
func WriteFileLoopValue(fsys FS, iterations, bufferSize int) task.ValueTask[struct{}] {
	return task.RunValue(func() (struct{}, error) {
		return struct{}{}, writeLoop(fsys, iterations, bufferSize, writeValue)
	})
}

func writeTask(w io.Writer, buf []byte) (int, error) {
	return task.Run(func() (int, error) {
		return w.Write(buf)
	}).Await()
}

func writeValue(w io.Writer, buf []byte) (int, error) {
	return task.RunValue(func() (int, error) {
		return w.Write(buf)
	}).Await()
}

// writeLoop owns the file for the duration of the call. Once the file
// has been created it is closed and removed on every exit path; cleanup
// errors are joined to the first failure rather than replacing it.
func writeLoop(fsys FS, iterations, bufferSize int, write func(io.Writer, []byte) (int, error)) error {
	if iterations < 1 || bufferSize < 1 {
		return ErrInvalidParams
	}

	f, err := fsys.Create(FileName)
	if err != nil {
		return fmt.Errorf("subject: create %s: %w", FileName, err)
	}

	junk := make([]byte, bufferSize)
	for i := 1; i <= iterations; i++ {
		if _, err = write(f, junk); err != nil {
			err = fmt.Errorf("subject: write %d of %d: %w", i, iterations, err)
			break
		}
	}

	if cerr := f.Close(); cerr != nil {
		err = errors.Join(err, fmt.Errorf("subject: close %s: %w", FileName, cerr))
	}
	if rerr := fsys.Remove(FileName); rerr != nil {
		err = errors.Join(err, fmt.Errorf("subject: remove %s: %w", FileName, rerr))
	}
	return err
}
