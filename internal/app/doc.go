// Package app contains the core application logic of the three tools. It
// defines the App struct, the validated option structs for each tool and
// their execution lifecycles, decoupled from any specific entrypoint like a
// CLI.
package app
