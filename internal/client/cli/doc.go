// Package cli implements the interactive terminal client for ItemKeeper.
//
// The client is a small read–eval–print loop: the user registers or logs in,
// then manages items with short commands (list, add, show, edit, delete) and
// transfers attachments through presigned URLs handed out by the server.
package cli
