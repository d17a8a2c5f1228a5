package trace

// EnvVar names the environment variable holding the trace output path
const EnvVar = "MCFCOMPLETE_TRACE"
