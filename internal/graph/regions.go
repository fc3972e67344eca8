package graph

import (
	"log"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/passbi/railnet/internal/models"
)

// AddRegion registers a new region. It fails on a duplicate ID or a sentinel field.
func (n *Network) AddRegion(id models.RegionID, name models.Name, polygon []models.Coord) bool {
	if _, exists := n.regions[id]; exists {
		return false
	}
	if err := validateRegion(id, name); err != nil {
		return false
	}

	n.regions[id] = &models.Region{
		ID:       id,
		Name:     name,
		Polygon:  append([]models.Coord(nil), polygon...),
		Parent:   models.NoRegion,
		Children: make(map[models.RegionID]struct{}),
	}
	n.touch()
	return true
}

// AllRegions returns all region IDs in ascending order
func (n *Network) AllRegions() []models.RegionID {
	ids := make([]models.RegionID, 0, len(n.regions))
	for id := range n.regions {
		ids = append(ids, id)
	}
	sortRegionIDs(ids)
	return ids
}

// Region returns a copy of a region record
func (n *Network) Region(id models.RegionID) (models.Region, bool) {
	r, ok := n.regions[id]
	if !ok {
		return models.Region{}, false
	}
	out := *r
	out.Polygon = append([]models.Coord(nil), r.Polygon...)
	out.Children = make(map[models.RegionID]struct{}, len(r.Children))
	for c := range r.Children {
		out.Children[c] = struct{}{}
	}
	return out, true
}

// RegionName returns the region's name or NoName
func (n *Network) RegionName(id models.RegionID) models.Name {
	if r, ok := n.regions[id]; ok {
		return r.Name
	}
	return models.NoName
}

// RegionPolygon returns the region's polygon, or [NoCoord] for an unknown region
func (n *Network) RegionPolygon(id models.RegionID) []models.Coord {
	r, ok := n.regions[id]
	if !ok {
		return []models.Coord{models.NoCoord}
	}
	return append([]models.Coord{}, r.Polygon...)
}

// AddSubregion makes child a direct subregion of parent.
// A region's parent is set once. Linking under one of the child's own
// descendants is rejected so the hierarchy stays a forest.
func (n *Network) AddSubregion(childID, parentID models.RegionID) bool {
	child, ok := n.regions[childID]
	if !ok {
		return false
	}
	parent, ok := n.regions[parentID]
	if !ok {
		return false
	}
	if child.Parent != models.NoRegion {
		return false
	}
	if n.isAncestorOrSelf(childID, parentID) {
		log.Printf("Warning: region %d is an ancestor of %d, refusing to create a cycle", childID, parentID)
		return false
	}

	parent.Children[childID] = struct{}{}
	child.Parent = parentID
	n.touch()
	return true
}

// isAncestorOrSelf walks up from id looking for ancestor
func (n *Network) isAncestorOrSelf(ancestor, id models.RegionID) bool {
	for cur := id; cur != models.NoRegion; {
		if cur == ancestor {
			return true
		}
		r, ok := n.regions[cur]
		if !ok {
			return false
		}
		cur = r.Parent
	}
	return false
}

// AssignStationToRegion places a station directly in a region.
// A station belongs to at most one region.
func (n *Network) AssignStationToRegion(stationID models.StationID, regionID models.RegionID) bool {
	s, ok := n.stations[stationID]
	if !ok {
		return false
	}
	if _, ok := n.regions[regionID]; !ok {
		return false
	}
	if s.Region != models.NoRegion {
		return false
	}
	s.Region = regionID
	n.touch()
	return true
}

// RegionsContaining returns the station's region and all its ancestors, nearest first.
// An unknown station yields [NoRegion]; a station without a region yields an empty list.
func (n *Network) RegionsContaining(stationID models.StationID) []models.RegionID {
	s, ok := n.stations[stationID]
	if !ok {
		return []models.RegionID{models.NoRegion}
	}
	return n.ancestorChain(s.Region)
}

// ancestorChain lists id and its ancestors, nearest first
func (n *Network) ancestorChain(id models.RegionID) []models.RegionID {
	chain := []models.RegionID{}
	for cur := id; cur != models.NoRegion; {
		r, ok := n.regions[cur]
		if !ok {
			break
		}
		chain = append(chain, r.ID)
		cur = r.Parent
	}
	return chain
}

// DescendantsOf returns every region below id in pre-order.
// Siblings are visited in ascending ID order.
func (n *Network) DescendantsOf(id models.RegionID) []models.RegionID {
	r, ok := n.regions[id]
	if !ok {
		return []models.RegionID{models.NoRegion}
	}

	result := []models.RegionID{}
	stack := n.sortedChildren(r)
	for i, j := 0, len(stack)-1; i < j; i, j = i+1, j-1 {
		stack[i], stack[j] = stack[j], stack[i]
	}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		result = append(result, cur)

		children := n.sortedChildren(n.regions[cur])
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return result
}

func (n *Network) sortedChildren(r *models.Region) []models.RegionID {
	if r == nil {
		return nil
	}
	ids := make([]models.RegionID, 0, len(r.Children))
	for c := range r.Children {
		ids = append(ids, c)
	}
	sortRegionIDs(ids)
	return ids
}

// NearestCommonAncestor returns the closest region containing both a and b.
// A region counts as containing itself, so an ancestor of the other argument
// is returned as is. Regions sharing a parent get that parent without a
// chain walk; this includes a == b, so a region with a parent paired with
// itself yields the parent and a root paired with itself yields the root.
func (n *Network) NearestCommonAncestor(a, b models.RegionID) models.RegionID {
	ra, ok := n.regions[a]
	if !ok {
		return models.NoRegion
	}
	rb, ok := n.regions[b]
	if !ok {
		return models.NoRegion
	}
	if ra.Parent != models.NoRegion && ra.Parent == rb.Parent {
		return ra.Parent
	}

	inB := make(map[models.RegionID]struct{})
	for _, id := range n.ancestorChain(b) {
		inB[id] = struct{}{}
	}
	for _, id := range n.ancestorChain(a) {
		if _, ok := inB[id]; ok {
			return id
		}
	}
	return models.NoRegion
}

// RegionsAt returns the regions whose polygon contains coord, in ascending ID order
func (n *Network) RegionsAt(coord models.Coord) []models.RegionID {
	point := Point(coord)
	result := []models.RegionID{}
	for id, r := range n.regions {
		if len(r.Polygon) < 3 {
			continue
		}
		if planar.PolygonContains(polygonOf(r), point) {
			result = append(result, id)
		}
	}
	sortRegionIDs(result)
	return result
}

func polygonOf(r *models.Region) orb.Polygon {
	ring := make(orb.Ring, 0, len(r.Polygon)+1)
	for _, c := range r.Polygon {
		ring = append(ring, Point(c))
	}
	if !ring.Closed() {
		ring = append(ring, ring[0])
	}
	return orb.Polygon{ring}
}

func sortRegionIDs(ids []models.RegionID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
