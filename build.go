// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jsonh

import (
	"github.com/creachadair/jsonh/ast"
)

// A treeBuilder folds a token sequence into a value tree using a stack of
// open containers and a pending property-name slot per open object. Comment
// tokens never reach the tree. The builder reports done as soon as the root
// value is complete; trailing tokens are not consumed.
type treeBuilder struct {
	r        *Reader
	stk      []*openNode
	root     ast.Value
	done     bool
	maxDepth int
}

// An openNode is a container under construction. key records the node's own
// property name in its parent, captured when the container was opened;
// pending holds the name awaiting this object's next member value.
type openNode struct {
	isObj bool
	obj   ast.Object
	arr   ast.Array

	key    string
	hasKey bool

	pending    string
	hasPending bool
}

func (b *treeBuilder) handle(tok Token) (bool, error) {
	switch tok.Kind {
	case Comment:
		// no value-tree effect

	case Null:
		b.submitLeaf(ast.Null{})
	case True:
		b.submitLeaf(ast.Bool(true))
	case False:
		b.submitLeaf(ast.Bool(false))
	case String:
		b.submitLeaf(ast.String(tok.Text))
	case Number:
		v, err := ParseNumber(tok.Text)
		if err != nil {
			return false, b.r.failf(ErrMalformedNumber, "%v", err)
		}
		b.submitLeaf(ast.Number(v))

	case PropertyName:
		top := b.top()
		top.pending = tok.Text
		top.hasPending = true

	case StartObject, StartArray:
		if len(b.stk)+1 > b.maxDepth {
			return false, b.r.failf(ErrMaxDepth, "exceeded max depth %d", b.maxDepth)
		}
		node := &openNode{isObj: tok.Kind == StartObject}
		if len(b.stk) > 0 {
			node.key, node.hasKey = b.top().takePending()
		}
		b.stk = append(b.stk, node)

	case EndObject, EndArray:
		node := b.top()
		b.stk = b.stk[:len(b.stk)-1]
		b.submit(node.value(), node.key, node.hasKey)
	}
	return b.done, nil
}

func (b *treeBuilder) top() *openNode { return b.stk[len(b.stk)-1] }

func (b *treeBuilder) submitLeaf(v ast.Value) {
	var key string
	var hasKey bool
	if len(b.stk) > 0 {
		key, hasKey = b.top().takePending()
	}
	b.submit(v, key, hasKey)
}

// submit places a completed value: under its property name if one is
// pending (a duplicate key overwrites the earlier member in place), at the
// end of the enclosing array, or as the finished root.
func (b *treeBuilder) submit(v ast.Value, key string, hasKey bool) {
	if len(b.stk) == 0 {
		b.root = v
		b.done = true
		return
	}
	top := b.top()
	if top.isObj && hasKey {
		if m := top.obj.Find(key); m != nil {
			m.Value = v
		} else {
			top.obj = append(top.obj, &ast.Member{Key: key, Value: v})
		}
	} else {
		top.arr = append(top.arr, v)
	}
}

func (n *openNode) takePending() (string, bool) {
	key, ok := n.pending, n.hasPending
	n.pending, n.hasPending = "", false
	return key, ok
}

func (n *openNode) value() ast.Value {
	if n.isObj {
		return n.obj
	}
	return n.arr
}
