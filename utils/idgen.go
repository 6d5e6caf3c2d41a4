package utils

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// IDGenerator produces ids of the form <prefix>_<millis>_<9-char base36
// suffix>. Collision resistance is probabilistic only: good enough to
// separate records created within the same millisecond, no check against
// existing ids.
type IDGenerator struct {
	now  func() time.Time
	rand *rand.Rand
}

func NewIDGenerator() *IDGenerator {
	return &IDGenerator{
		now:  time.Now,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewIDGeneratorWith allows tests to pin the clock and the random source.
func NewIDGeneratorWith(now func() time.Time, r *rand.Rand) *IDGenerator {
	return &IDGenerator{now: now, rand: r}
}

func (g *IDGenerator) Generate(prefix string) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteByte('_')
	b.WriteString(strconv.FormatInt(g.now().UnixMilli(), 10))
	b.WriteByte('_')
	for i := 0; i < 9; i++ {
		b.WriteByte(base36[g.rand.Intn(len(base36))])
	}
	return b.String()
}
