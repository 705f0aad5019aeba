package cache_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cachesim/cache"
)

var _ = Describe("RecencySet", func() {
	var s *cache.RecencySet[uint32]

	BeforeEach(func() {
		s = cache.NewRecencySet[uint32](3)
	})

	It("should start empty", func() {
		Expect(s.Len()).To(Equal(0))
		Expect(s.Cap()).To(Equal(3))
		Expect(s.Items()).To(BeEmpty())
	})

	It("should report a miss then a hit for the same member", func() {
		hit, _, evicted := s.Touch(7)
		Expect(hit).To(BeFalse())
		Expect(evicted).To(BeFalse())

		hit, _, evicted = s.Touch(7)
		Expect(hit).To(BeTrue())
		Expect(evicted).To(BeFalse())
		Expect(s.Len()).To(Equal(1))
	})

	It("should order members from least to most recently used", func() {
		s.Touch(1)
		s.Touch(2)
		s.Touch(3)
		s.Touch(1)

		Expect(s.Items()).To(Equal([]uint32{2, 3, 1}))
	})

	It("should evict the least recently used member when full", func() {
		s.Touch(1)
		s.Touch(2)
		s.Touch(3)
		s.Touch(1) // 2 is now LRU

		hit, victim, evicted := s.Touch(4)
		Expect(hit).To(BeFalse())
		Expect(evicted).To(BeTrue())
		Expect(victim).To(Equal(uint32(2)))
		Expect(s.Items()).To(Equal([]uint32{3, 1, 4}))
		Expect(s.Len()).To(Equal(3))
	})

	It("should not promote on Contains", func() {
		s.Touch(1)
		s.Touch(2)
		Expect(s.Contains(1)).To(BeTrue())
		Expect(s.Contains(9)).To(BeFalse())
		Expect(s.Items()).To(Equal([]uint32{1, 2}))
	})

	It("should forget everything on Clear", func() {
		s.Touch(1)
		s.Touch(2)
		s.Clear()

		Expect(s.Len()).To(Equal(0))
		Expect(s.Contains(1)).To(BeFalse())

		hit, _, _ := s.Touch(1)
		Expect(hit).To(BeFalse())
	})

	It("should hold nothing with zero capacity", func() {
		empty := cache.NewRecencySet[string](0)
		hit, _, evicted := empty.Touch("a")
		Expect(hit).To(BeFalse())
		Expect(evicted).To(BeFalse())
		Expect(empty.Len()).To(Equal(0))
	})
})
