package syntax

import "sync"

// fileRegistry interns file paths behind FileId values, the same
// string-keyed, mutex-guarded interning table the teacher's path
// resolver uses, trimmed down: Loretta has no multi-root project/package
// search path, just a flat list of source paths a caller wants to refer
// to by stable id across diagnostics.
var fileRegistry = struct {
	sync.RWMutex
	toId   map[string]FileId
	fromId []string
}{
	toId:   make(map[string]FileId),
	fromId: []string{""}, // index 0 unused; NoFile is the zero FileId
}

// InternPath interns a file path and returns its stable FileId, reusing
// the existing id if the path was already interned.
func InternPath(path string) FileId {
	fileRegistry.Lock()
	defer fileRegistry.Unlock()

	if id, ok := fileRegistry.toId[path]; ok {
		return id
	}

	num := len(fileRegistry.fromId)
	if num > 0xffff {
		panic("file_registry: out of file ids")
	}
	id := FileId(num)
	fileRegistry.toId[path] = id
	fileRegistry.fromId = append(fileRegistry.fromId, path)
	return id
}

// Path returns the path a FileId was interned with, or "" for NoFile or
// an id this registry never issued.
func (id FileId) Path() string {
	fileRegistry.RLock()
	defer fileRegistry.RUnlock()
	if int(id) >= len(fileRegistry.fromId) {
		return ""
	}
	return fileRegistry.fromId[id]
}
