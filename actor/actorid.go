package actor

import (
	"fmt"

	"github.com/google/uuid"
)

// senderKind distinguishes a local sender handle from the reserved,
// unimplemented remote one.
type senderKind uint8

const (
	senderLocal senderKind = iota
	senderRemote
)

// actorSender is the enqueue-side handle an ActorId carries so that
// Send never needs to go back through the Registry. It mirrors
// original_source/src/actors.rs's ActorSender enum.
type actorSender struct {
	kind senderKind
	mbx  *Mailbox // nil for the remote variant
}

// ActorId is an opaque, hashable, equatable reference to an actor.
// Equality and hashing depend solely on (id, nodeID), matching spec.md's
// data model exactly; the embedded sender handle is not part of the
// identity, only plumbing to reach the mailbox without a Registry lookup
// on every send.
type ActorId struct {
	id     uuid.UUID
	nodeID uuid.UUID
	sender actorSender
}

// newLocalActorId builds an ActorId bound to a local mailbox.
func newLocalActorId(nodeID uuid.UUID, mbx *Mailbox) ActorId {
	return ActorId{
		id:     uuid.New(),
		nodeID: nodeID,
		sender: actorSender{kind: senderLocal, mbx: mbx},
	}
}

// Equal reports whether two ActorIds name the same actor. ActorId is a
// comparable struct so == also works for map keys, but Equal documents
// the spec.md-mandated equality rule (id, nodeID only) explicitly.
func (a ActorId) Equal(other ActorId) bool {
	return a.id == other.id && a.nodeID == other.nodeID
}

// String renders the ActorId for logs; format deliberately mirrors the
// original source's Debug impl.
func (a ActorId) String() string {
	return fmt.Sprintf("ActorId{ id: %s, node_id: %s }", a.id, a.nodeID)
}

// registryKey is the map key used by Registry; it is exactly the
// equality-relevant subset of ActorId, kept distinct so that adding
// fields to ActorId in the future can't silently change map identity.
type registryKey struct {
	id     uuid.UUID
	nodeID uuid.UUID
}

func (a ActorId) key() registryKey {
	return registryKey{id: a.id, nodeID: a.nodeID}
}
