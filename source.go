package kenburns

import (
	"errors"
	"image"
	"sync"
)

// ErrSourceExhausted is returned when an ImageSource has no further images.
var ErrSourceExhausted = errors.New("kenburns: image source exhausted")

// ImageSource supplies the images of a slideshow. The sequencing and
// repetition policy belongs to the source. Sources are only called from the
// background search, one call at a time.
type ImageSource interface {
	HasNext() bool
	Next() (image.Image, error)
	// UniqueImageCount bounds the search: a cycle gives up after
	// AttemptsPerImage * UniqueImageCount plans.
	UniqueImageCount() int
}

// SliceSource serves images from a fixed list in order.
type SliceSource struct {
	mu     sync.Mutex
	images []image.Image
	pos    int
	repeat bool
}

// NewSliceSource creates a source over images. With repeat set the list
// wraps around forever.
func NewSliceSource(images []image.Image, repeat bool) *SliceSource {
	return &SliceSource{images: images, repeat: repeat}
}

// HasNext reports whether Next will return an image.
func (s *SliceSource) HasNext() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasNext()
}

func (s *SliceSource) hasNext() bool {
	return len(s.images) > 0 && (s.repeat || s.pos < len(s.images))
}

// Next returns the next image or ErrSourceExhausted.
func (s *SliceSource) Next() (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasNext() {
		return nil, ErrSourceExhausted
	}
	img := s.images[s.pos%len(s.images)]
	s.pos++
	if s.repeat && s.pos >= len(s.images) {
		s.pos = 0
	}
	return img, nil
}

// UniqueImageCount returns the number of images in the list.
func (s *SliceSource) UniqueImageCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.images)
}
