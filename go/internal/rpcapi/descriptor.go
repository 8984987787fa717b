// Package rpcapi is the Connect API of the salon server: read-only room
// state and the leaderboard, served next to the JSON routes. The schema is
// described with descriptorpb and registered in protoregistry.GlobalFiles so
// gRPC reflection (grpcurl, grpcui) can serve it.
package rpcapi

import (
	"fmt"
	"sync"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
)

// FileName is the path the schema is registered under
const FileName = "salon/v1/salon.proto"

const packageName = "salon.v1"

var (
	fileOnce sync.Once
	fileDesc protoreflect.FileDescriptor
	fileErr  error
)

// File returns the schema descriptor, registering it on first use.
func File() (protoreflect.FileDescriptor, error) {
	fileOnce.Do(func() {
		fd, err := protodesc.NewFile(fileDescriptorProto(), protoregistry.GlobalFiles)
		if err != nil {
			fileErr = fmt.Errorf("build %s: %w", FileName, err)
			return
		}
		if err := protoregistry.GlobalFiles.RegisterFile(fd); err != nil {
			fileErr = fmt.Errorf("register %s: %w", FileName, err)
			return
		}
		fileDesc = fd
	})
	return fileDesc, fileErr
}

// methodDescriptor looks up service/method in the registered schema. The
// schema is static, so a failure is a bug in this package.
func methodDescriptor(service, method string) protoreflect.MethodDescriptor {
	fd, err := File()
	if err != nil {
		panic(err)
	}
	sd := fd.Services().ByName(protoreflect.Name(service))
	if sd == nil {
		panic(fmt.Sprintf("rpcapi: service %s not in %s", service, FileName))
	}
	md := sd.Methods().ByName(protoreflect.Name(method))
	if md == nil {
		panic(fmt.Sprintf("rpcapi: method %s.%s not in %s", service, method, FileName))
	}
	return md
}

func fileDescriptorProto() *descriptorpb.FileDescriptorProto {
	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String(FileName),
		Package: proto.String(packageName),
		Syntax:  proto.String("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{
			message("GetRoomStateRequest",
				scalar("room_id", "roomId", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
			),
			message("RoomState",
				scalar("room_id", "roomId", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
				scalar("fen", "fen", 2, descriptorpb.FieldDescriptorProto_TYPE_STRING),
				scalar("seq", "seq", 3, descriptorpb.FieldDescriptorProto_TYPE_UINT64),
				scalar("outcome", "outcome", 4, descriptorpb.FieldDescriptorProto_TYPE_STRING),
				repeated(scalar("participants", "participants", 5, descriptorpb.FieldDescriptorProto_TYPE_STRING)),
				scalar("last_active", "lastActive", 6, descriptorpb.FieldDescriptorProto_TYPE_STRING),
			),
			message("GetRoomStateResponse",
				messageField("room", "room", 1, "RoomState"),
			),
			message("ListRoomsRequest"),
			message("ListRoomsResponse",
				repeated(messageField("rooms", "rooms", 1, "RoomState")),
			),
			message("GetLeaderboardRequest",
				scalar("limit", "limit", 1, descriptorpb.FieldDescriptorProto_TYPE_INT32),
			),
			message("LeaderboardEntry",
				scalar("name", "name", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
				scalar("score", "score", 2, descriptorpb.FieldDescriptorProto_TYPE_INT32),
				scalar("total", "total", 3, descriptorpb.FieldDescriptorProto_TYPE_INT32),
				scalar("timestamp", "timestamp", 4, descriptorpb.FieldDescriptorProto_TYPE_STRING),
			),
			message("GetLeaderboardResponse",
				repeated(messageField("entries", "entries", 1, "LeaderboardEntry")),
			),
		},
		Service: []*descriptorpb.ServiceDescriptorProto{
			{
				Name: proto.String("RoomService"),
				Method: []*descriptorpb.MethodDescriptorProto{
					method("GetRoomState", "GetRoomStateRequest", "GetRoomStateResponse"),
					method("ListRooms", "ListRoomsRequest", "ListRoomsResponse"),
				},
			},
			{
				Name: proto.String("LeaderboardService"),
				Method: []*descriptorpb.MethodDescriptorProto{
					method("GetLeaderboard", "GetLeaderboardRequest", "GetLeaderboardResponse"),
				},
			},
		},
	}
}

func message(name string, fields ...*descriptorpb.FieldDescriptorProto) *descriptorpb.DescriptorProto {
	return &descriptorpb.DescriptorProto{
		Name:  proto.String(name),
		Field: fields,
	}
}

func scalar(name, jsonName string, number int32, typ descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:     proto.String(name),
		JsonName: proto.String(jsonName),
		Number:   proto.Int32(number),
		Label:    descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		Type:     typ.Enum(),
	}
}

func messageField(name, jsonName string, number int32, typeName string) *descriptorpb.FieldDescriptorProto {
	f := scalar(name, jsonName, number, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE)
	f.TypeName = proto.String("." + packageName + "." + typeName)
	return f
}

func repeated(f *descriptorpb.FieldDescriptorProto) *descriptorpb.FieldDescriptorProto {
	f.Label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum()
	return f
}

func method(name, input, output string) *descriptorpb.MethodDescriptorProto {
	return &descriptorpb.MethodDescriptorProto{
		Name:       proto.String(name),
		InputType:  proto.String("." + packageName + "." + input),
		OutputType: proto.String("." + packageName + "." + output),
	}
}
