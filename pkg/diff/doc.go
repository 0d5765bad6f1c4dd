// Package diff partitions two rule lists into dropped, added and retained
// rules using name equality as identity.
//
// Retained rules carry the new document's description. Membership is tested
// per element, so a name that occurs twice in a source list occurs twice in
// its partition. Name lookups are built last-write-wins; the number of
// shadowed duplicates on each side is reported in [Diagnostics].
//
// For retained rules whose description changed between versions, [Compare]
// also produces a [Change] carrying a unified diff of the two descriptions.
package diff
