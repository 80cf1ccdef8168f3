package edit

//Package edit implements the structural edits that can be applied to a
//molecule: substituting an atom by a functional group, adding a group to an
//atom and deleting atoms. Edits never modify the molecule they are given,
//they return a new one.
//
//Positions for the atoms of a new group are computed with a simple
//deterministic heuristic. The first atom of the group is bonded to (or
//replaces) the anchor atom, and the rest are built outwards from it using
//covalent radii for bond lengths and tetrahedral angles. The results are meant
//to look reasonable, not to be physically accurate, so no optimization or
//collision check with the rest of the molecule is performed.
