package exam

import (
	"strconv"

	"github.com/google/uuid"
)

// Expansion ids are name-based (v5) so expanding the same template for the
// same test always yields the same tree. Duplication uses random (v4) ids.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://mindengage.ai/mocktest"))

func sectionID(testID, templateSectionID string) string {
	return uuid.NewSHA1(idNamespace, []byte("test/"+testID+"/section/"+templateSectionID)).String()
}

func partID(testID, templateSectionID string, partNo int) string {
	name := "test/" + testID + "/section/" + templateSectionID + "/part/" + strconv.Itoa(partNo)
	return uuid.NewSHA1(idNamespace, []byte(name)).String()
}

func questionID(testID, templateSectionID string, partNo, index int) string {
	name := "test/" + testID + "/section/" + templateSectionID + "/part/" + strconv.Itoa(partNo) + "/q/" + strconv.Itoa(index)
	return uuid.NewSHA1(idNamespace, []byte(name)).String()
}

// OptionID derives the id of a choice from its question and label.
func OptionID(questionID, label string) string {
	return uuid.NewSHA1(idNamespace, []byte("question/"+questionID+"/option/"+label)).String()
}

func newID() string { return uuid.NewString() }
