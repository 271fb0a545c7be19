package leetify

// Version is reported in the default User-Agent.
const Version = "0.3.0"
