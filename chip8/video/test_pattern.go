package video

// TestPattern identifies one of the built-in patterns shown when no program
// is running.
type TestPattern int

const (
	PatternCheckerboard TestPattern = iota
	PatternStripes
	PatternDiagonal
	PatternBorder
	patternCount
)

// TestPatternCount is the number of patterns available for cycling.
const TestPatternCount = int(patternCount)

var patternNames = [...]string{"checkerboard", "stripes", "diagonal", "border"}

func (p TestPattern) String() string {
	if p < 0 || p >= patternCount {
		return "unknown"
	}
	return patternNames[p]
}

// Next returns the pattern after p, wrapping around.
func (p TestPattern) Next() TestPattern {
	return (p + 1) % patternCount
}

// GenerateTestPattern renders p into a frame. offset shifts the pattern
// horizontally so backends can animate it.
func GenerateTestPattern(p TestPattern, offset int) Frame {
	var f Frame
	for y := 0; y < FramebufferHeight; y++ {
		for x := 0; x < FramebufferWidth; x++ {
			sx := x + offset
			switch p {
			case PatternCheckerboard:
				f[y][x] = (sx/4+y/4)%2 == 0
			case PatternStripes:
				f[y][x] = (sx/2)%2 == 0
			case PatternDiagonal:
				f[y][x] = (sx+y)%8 < 4
			case PatternBorder:
				f[y][x] = x == 0 || y == 0 || x == FramebufferWidth-1 || y == FramebufferHeight-1
			}
		}
	}
	return f
}
