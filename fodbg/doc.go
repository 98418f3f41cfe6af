/*
Package fodbg implements helpers to debug a formatting tree with resolved
properties.

Dump prints a tree as indented text, ToGraphViz creates a diagram in
GraphViz (DOT) format.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fodbg
