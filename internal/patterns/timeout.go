package patterns

import "time"

// DefaultTimeout is the default timeout for HTTP requests to the voice backend
const DefaultTimeout = 3 * time.Second

// SlowServiceTimeout is a longer timeout for audio lookups, which can be slow
// while the backend resolves recording URLs
const SlowServiceTimeout = 10 * time.Second
