package stream

import "sort"

// blockStore holds the live blocks of a window with a per-column index for
// column removal and a voxel index that keeps one block per cell.
type blockStore struct {
	blocks   map[BlockID]*Block
	colIndex map[Column][]BlockID
	voxels   map[Voxel]BlockID
	nextID   BlockID
	modCount uint64 // increases on any add/remove
}

func newBlockStore() *blockStore {
	return &blockStore{
		blocks:   make(map[BlockID]*Block),
		colIndex: make(map[Column][]BlockID),
		voxels:   make(map[Voxel]BlockID),
	}
}

func (s *blockStore) len() int { return len(s.blocks) }

func (s *blockStore) get(id BlockID) (*Block, bool) {
	b, ok := s.blocks[id]
	return b, ok
}

func (s *blockStore) occupied(v Voxel) bool {
	_, ok := s.voxels[v]
	return ok
}

func (s *blockStore) at(v Voxel) (*Block, bool) {
	id, ok := s.voxels[v]
	if !ok {
		return nil, false
	}
	return s.blocks[id], true
}

// add assigns b an ID and indexes it. The voxel must be free.
func (s *blockStore) add(b *Block) {
	s.nextID++
	b.ID = s.nextID
	s.blocks[b.ID] = b
	s.voxels[b.Voxel] = b.ID
	col := b.Column()
	s.colIndex[col] = append(s.colIndex[col], b.ID)
	s.modCount++
}

func (s *blockStore) remove(id BlockID) (*Block, bool) {
	b, ok := s.blocks[id]
	if !ok {
		return nil, false
	}
	delete(s.blocks, id)
	delete(s.voxels, b.Voxel)
	col := b.Column()
	ids := s.colIndex[col]
	for i, other := range ids {
		if other == id {
			ids = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(ids) == 0 {
		delete(s.colIndex, col)
	} else {
		s.colIndex[col] = ids
	}
	s.modCount++
	return b, true
}

// column returns the IDs of every block standing in c, oldest first.
func (s *blockStore) column(c Column) []BlockID {
	ids := s.colIndex[c]
	out := make([]BlockID, len(ids))
	copy(out, ids)
	return out
}

// sorted returns all blocks ordered by ID, oldest first.
func (s *blockStore) sorted() []*Block {
	out := make([]*Block, 0, len(s.blocks))
	for _, b := range s.blocks {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *blockStore) reset() {
	clear(s.blocks)
	clear(s.colIndex)
	clear(s.voxels)
	s.modCount++
}
