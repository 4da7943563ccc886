package contextkeys

// Custom key type avoids collisions with other packages using the context.
type contextKey string

// DBContextKey is the key under which the request-scoped *gorm.DB is stored.
const DBContextKey = contextKey("db")
