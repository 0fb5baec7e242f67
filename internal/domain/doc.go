// Package domain contains the core entities of the festival API: users
// with their single assigned role, organizer profiles, and festival
// events. Entities validate themselves; persistence and transport live
// in other packages.
package domain
