package chatv1

import (
	"fmt"

	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// wire is implemented by every message struct in this package. Values cross
// the connection as dynamicpb messages built from File, so grpc's default
// proto codec and any standard client see plain protobuf.
type wire[T any] interface {
	*T
	protoName() protoreflect.Name
	fill(protoreflect.Message)
	load(protoreflect.Message)
}

func newMessage[T any, PT wire[T]]() *dynamicpb.Message {
	return dynamicpb.NewMessage(messageDescriptor(PT(new(T)).protoName()))
}

func encode[T any, PT wire[T]](v *T) *dynamicpb.Message {
	m := newMessage[T, PT]()
	if v != nil {
		PT(v).fill(m)
	}
	return m
}

func decode[T any, PT wire[T]](m protoreflect.Message) *T {
	v := new(T)
	PT(v).load(m)
	return v
}

func field(m protoreflect.Message, name protoreflect.Name) protoreflect.FieldDescriptor {
	fd := m.Descriptor().Fields().ByName(name)
	if fd == nil {
		panic(fmt.Sprintf("chatv1: %s has no field %s", m.Descriptor().FullName(), name))
	}
	return fd
}

func setString(m protoreflect.Message, name protoreflect.Name, v string) {
	if v != "" {
		m.Set(field(m, name), protoreflect.ValueOfString(v))
	}
}

func getString(m protoreflect.Message, name protoreflect.Name) string {
	return m.Get(field(m, name)).String()
}

func setInt32(m protoreflect.Message, name protoreflect.Name, v int32) {
	if v != 0 {
		m.Set(field(m, name), protoreflect.ValueOfInt32(v))
	}
}

func getInt32(m protoreflect.Message, name protoreflect.Name) int32 {
	return int32(m.Get(field(m, name)).Int())
}

func setBool(m protoreflect.Message, name protoreflect.Name, v bool) {
	if v {
		m.Set(field(m, name), protoreflect.ValueOfBool(v))
	}
}

func getBool(m protoreflect.Message, name protoreflect.Name) bool {
	return m.Get(field(m, name)).Bool()
}

func setDouble(m protoreflect.Message, name protoreflect.Name, v float64) {
	if v != 0 {
		m.Set(field(m, name), protoreflect.ValueOfFloat64(v))
	}
}

func getDouble(m protoreflect.Message, name protoreflect.Name) float64 {
	return m.Get(field(m, name)).Float()
}

func setStrings(m protoreflect.Message, name protoreflect.Name, vs []string) {
	if len(vs) == 0 {
		return
	}
	l := m.Mutable(field(m, name)).List()
	for _, v := range vs {
		l.Append(protoreflect.ValueOfString(v))
	}
}

func getStrings(m protoreflect.Message, name protoreflect.Name) []string {
	l := m.Get(field(m, name)).List()
	if l.Len() == 0 {
		return nil
	}
	out := make([]string, l.Len())
	for i := range out {
		out[i] = l.Get(i).String()
	}
	return out
}

func setTime(m protoreflect.Message, name protoreflect.Name, ts *timestamppb.Timestamp) {
	if ts == nil {
		return
	}
	fd := field(m, name)
	sub := m.NewField(fd).Message()
	setInt64(sub, "seconds", ts.GetSeconds())
	setInt32(sub, "nanos", ts.GetNanos())
	m.Set(fd, protoreflect.ValueOfMessage(sub))
}

func getTime(m protoreflect.Message, name protoreflect.Name) *timestamppb.Timestamp {
	fd := field(m, name)
	if !m.Has(fd) {
		return nil
	}
	sub := m.Get(fd).Message()
	return &timestamppb.Timestamp{
		Seconds: sub.Get(field(sub, "seconds")).Int(),
		Nanos:   getInt32(sub, "nanos"),
	}
}

func setInt64(m protoreflect.Message, name protoreflect.Name, v int64) {
	if v != 0 {
		m.Set(field(m, name), protoreflect.ValueOfInt64(v))
	}
}

func setMessage[T any, PT wire[T]](m protoreflect.Message, name protoreflect.Name, v *T) {
	if v == nil {
		return
	}
	fd := field(m, name)
	sub := m.NewField(fd).Message()
	PT(v).fill(sub)
	m.Set(fd, protoreflect.ValueOfMessage(sub))
}

func getMessage[T any, PT wire[T]](m protoreflect.Message, name protoreflect.Name) *T {
	fd := field(m, name)
	if !m.Has(fd) {
		return nil
	}
	return decode[T, PT](m.Get(fd).Message())
}

func setList[T any, PT wire[T]](m protoreflect.Message, name protoreflect.Name, vs []*T) {
	if len(vs) == 0 {
		return
	}
	l := m.Mutable(field(m, name)).List()
	for _, v := range vs {
		e := l.NewElement()
		if v != nil {
			PT(v).fill(e.Message())
		}
		l.Append(e)
	}
}

func getList[T any, PT wire[T]](m protoreflect.Message, name protoreflect.Name) []*T {
	l := m.Get(field(m, name)).List()
	if l.Len() == 0 {
		return nil
	}
	out := make([]*T, l.Len())
	for i := range out {
		out[i] = decode[T, PT](l.Get(i).Message())
	}
	return out
}
