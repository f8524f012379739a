package util

// RedisEventsChannel is the default channel the relay mirror publishes on.
const RedisEventsChannel = "chess:events"
