package stackfile

// Limits bounds what a single decode call will accept. Zero fields take the
// defaults.
type Limits struct {
	MaxBlockSize int32 // declared block size, header included
	MaxParts     int   // part descriptors per card or background
	MaxContents  int   // content records per card or background
}

func defaultLimits() Limits {
	return Limits{
		MaxBlockSize: 16 << 20, // 16 MiB
		MaxParts:     4096,
		MaxContents:  4096,
	}
}

func (l Limits) withDefaults() Limits {
	d := defaultLimits()
	if l.MaxBlockSize == 0 {
		l.MaxBlockSize = d.MaxBlockSize
	}
	if l.MaxParts == 0 {
		l.MaxParts = d.MaxParts
	}
	if l.MaxContents == 0 {
		l.MaxContents = d.MaxContents
	}
	return l
}
