package process

// ExitCodeOSError is the reserved exit code for operating-system level
// failures: the child could not be spawned or exec'd, or it terminated
// without producing a numeric exit code.
//
// From https://man.netbsd.org/sysexits.3
const ExitCodeOSError = 71
