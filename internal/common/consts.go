package common

// UnknownStr is rendered by String methods for out of range enum values.
const UnknownStr = "unknown"
