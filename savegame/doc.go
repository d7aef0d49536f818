// Package savegame persists node state.
//
// A save file is the four magic bytes FA 3E 50 3E, the ASCII version "V0001"
// and a zlib stream. The stream holds a little-endian record count followed
// by one fixed-layout record per node. Records carry node ids, so a save is
// applied to a scene that recreated the same nodes in the same order.
//
// Catalog keeps an index of save slots in SQLite.
package savegame
