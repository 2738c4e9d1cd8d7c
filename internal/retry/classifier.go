package retry

import (
	"errors"
	"io/fs"
	"strings"
	"syscall"
)

// transientErrnos are the errno values a busy or locked file reports.
var transientErrnos = []syscall.Errno{
	syscall.EBUSY,
	syscall.EAGAIN,
	syscall.EINTR,
	syscall.ETXTBSY,
}

// transientMessages cover platforms whose errors do not unwrap to an errno
// above, most notably Windows sharing violations.
var transientMessages = []string{
	"being used by another process",
	"resource temporarily unavailable",
	"device or resource busy",
	"interrupted system call",
}

// FileErrorClassifier recognizes transient filesystem errors.
type FileErrorClassifier struct{}

// NewFileErrorClassifier creates a new filesystem error classifier.
func NewFileErrorClassifier() *FileErrorClassifier {
	return &FileErrorClassifier{}
}

// IsTransient reports whether err is a momentary condition such as a busy file.
// Missing files and permission errors are never transient.
func (c *FileErrorClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return false
	}

	for _, errno := range transientErrnos {
		if errors.Is(err, errno) {
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range transientMessages {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
