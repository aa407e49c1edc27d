package services

// Option tunes a service.
type Option func(*serviceOptions)

type serviceOptions struct {
	imageMaxKB int64
}

// WithImageMaxKB overrides the largest accepted image size in KiB.
func WithImageMaxKB(kb int64) Option {
	return func(o *serviceOptions) {
		if kb > 0 {
			o.imageMaxKB = kb
		}
	}
}

func options(opts []Option) serviceOptions {
	o := serviceOptions{imageMaxKB: DefaultImageMaxKB}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
