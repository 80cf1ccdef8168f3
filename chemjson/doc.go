package chemjson

//Package chemjson implements the JSON form of molmod molecules, edit
//operations and errors. It is meant for programs (such as a web front end)
//that talk to molmod over a text channel. Atoms are labelled from 1 in
//all JSON documents, as users see them, while the rest of molmod counts from 0.
