package groups

//Package groups holds the static catalog of functional groups that can be
//attached to a molecule. A group is only an ordered list of element symbols,
//the first one being the atom bonded to the anchor. Coordinates are computed
//when the group is attached (see package edit).
