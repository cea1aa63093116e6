package db

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// watchQuery runs a snapshot listener for q and invokes fn with the full
// current result set on every change. The listener stops when ctx is
// cancelled or the returned Unsubscribe is called; a terminal iterator error
// is delivered to fn once and ends the listener. The Firestore client
// retries transient errors internally, so anything surfaced here is final.
func watchQuery(ctx context.Context, q firestore.Query, fn func(docs []*firestore.DocumentSnapshot, err error)) Unsubscribe {
	wctx, cancel := context.WithCancel(ctx)
	go func() {
		iter := q.Snapshots(wctx)
		defer iter.Stop()
		for {
			snap, err := iter.Next()
			if err != nil {
				if status.Code(err) == codes.Canceled {
					return
				}
				fn(nil, err)
				return
			}
			docs, err := snap.Documents.GetAll()
			fn(docs, err)
		}
	}()
	return Unsubscribe(cancel)
}

// watchDoc is the single-document counterpart of watchQuery. fn receives a
// nil snapshot while the document does not exist.
func watchDoc(ctx context.Context, ref *firestore.DocumentRef, fn func(doc *firestore.DocumentSnapshot, err error)) Unsubscribe {
	wctx, cancel := context.WithCancel(ctx)
	go func() {
		iter := ref.Snapshots(wctx)
		defer iter.Stop()
		for {
			snap, err := iter.Next()
			if err != nil {
				if status.Code(err) == codes.Canceled {
					return
				}
				fn(nil, err)
				return
			}
			if snap != nil && !snap.Exists() {
				fn(nil, nil)
				continue
			}
			fn(snap, nil)
		}
	}()
	return Unsubscribe(cancel)
}
